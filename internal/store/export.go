package store

import (
	"context"
	"io"

	"github.com/dstolz/logswap/internal/report"
)

// ExportRunCSV writes a saved run's daily sequence to w in the same CSV
// shape 'logswap run --csv' produces.
func (s *RunStore) ExportRunCSV(ctx context.Context, id string, w io.Writer) error {
	_, results, err := s.GetRun(ctx, id)
	if err != nil {
		return err
	}
	return report.WriteCSV(w, results)
}
