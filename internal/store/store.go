// Package store persists completed simulation runs to SQLite so past
// capacity-planning experiments can be listed, re-rendered, and exported.
package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dstolz/logswap/internal/sim"
)

// RunStore keeps run history in a SQLite database under dir.
type RunStore struct {
	db     *sql.DB
	dir    string
	dbPath string
}

// RunMeta describes a saved run: its identity, the configuration it ran
// with, and headline cost figures.
type RunMeta struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Config    sim.Config `json:"config"`
	Seed      *uint64    `json:"seed,omitempty"`

	Swaps           int `json:"swaps"`
	TotalRowsCopied int `json:"total_rows_copied"`
	PeakTotal       int `json:"peak_total_records"`
	FinalTotal      int `json:"final_total_records"`
}

// Open creates (if needed) and opens the run-history database at
// dir/logswap.db.
func Open(dir string) (*RunStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	dbPath := filepath.Join(dir, "logswap.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &RunStore{db: db, dir: dir, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// newRunID returns a short random hex identifier for a saved run.
func newRunID() (string, error) {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("failed to generate run id: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
