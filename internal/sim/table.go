package sim

// table is an ordered collection of record creation days. Records are
// always appended in day order and only a sorted prefix is ever dropped,
// so the backing store is a ring-buffer deque: appends go to the back and
// filtering a swap keeps a contiguous suffix.
//
// Invariant: days are non-decreasing from front to back.
type table struct {
	buf  []int
	head int
	n    int
}

// Len returns the number of records in the table.
func (t *table) Len() int { return t.n }

// At returns the creation day of the i-th record from the front.
func (t *table) At(i int) int {
	return t.buf[(t.head+i)%len(t.buf)]
}

// appendN appends count records stamped with the given day.
func (t *table) appendN(day, count int) {
	for i := 0; i < count; i++ {
		t.push(day)
	}
}

// push appends a single record to the back.
func (t *table) push(day int) {
	if t.n == len(t.buf) {
		t.grow()
	}
	t.buf[(t.head+t.n)%len(t.buf)] = day
	t.n++
}

func (t *table) grow() {
	size := 2 * len(t.buf)
	if size == 0 {
		size = 16
	}
	buf := make([]int, size)
	for i := 0; i < t.n; i++ {
		buf[i] = t.At(i)
	}
	t.buf = buf
	t.head = 0
}

// countOlderThan counts the contiguous front prefix of records whose day
// is strictly less than cutoff. The sorted invariant guarantees all such
// records form a prefix, so the scan stops at the first newer record.
func (t *table) countOlderThan(cutoff int) int {
	for i := 0; i < t.n; i++ {
		if t.At(i) >= cutoff {
			return i
		}
	}
	return t.n
}

// newerThan returns a new table holding only the records whose day is
// strictly greater than cutoff, preserving order.
func (t *table) newerThan(cutoff int) *table {
	skip := 0
	for skip < t.n && t.At(skip) <= cutoff {
		skip++
	}
	kept := &table{buf: make([]int, t.n-skip), n: t.n - skip}
	for i := skip; i < t.n; i++ {
		kept.buf[i-skip] = t.At(i)
	}
	return kept
}

// front returns the day of the oldest record, or false when empty.
func (t *table) front() (int, bool) {
	if t.n == 0 {
		return 0, false
	}
	return t.At(0), true
}

// back returns the day of the newest record, or false when empty.
func (t *table) back() (int, bool) {
	if t.n == 0 {
		return 0, false
	}
	return t.At(t.n - 1), true
}
