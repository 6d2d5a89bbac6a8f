package sheet

import (
	"context"
	"sync"
)

// MemoryWorkbook keeps worksheets in process memory. It is used by tests and
// by the "memory" backend for local development; nothing is persisted.
type MemoryWorkbook struct {
	mu     sync.RWMutex
	tables map[string][][]string

	// Err, when set, is returned by every operation. Tests use it to
	// simulate an unreachable backend.
	Err error
}

// NewMemoryWorkbook returns an empty workbook.
func NewMemoryWorkbook() *MemoryWorkbook {
	return &MemoryWorkbook{tables: map[string][][]string{}}
}

// Seed replaces a worksheet with header and rows.
func (wb *MemoryWorkbook) Seed(name string, header []string, rows ...[]string) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	vals := [][]string{cloneRow(header)}
	for _, r := range rows {
		vals = append(vals, cloneRow(r))
	}
	wb.tables[name] = vals
}

func (wb *MemoryWorkbook) Table(_ context.Context, name string) (Table, error) {
	wb.mu.RLock()
	defer wb.mu.RUnlock()
	if wb.Err != nil {
		return nil, connErr("open "+name, wb.Err)
	}
	if _, ok := wb.tables[name]; !ok {
		return nil, ErrTableNotFound
	}
	return &memTable{wb: wb, name: name}, nil
}

func (wb *MemoryWorkbook) EnsureTable(_ context.Context, name string, header []string) error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if wb.Err != nil {
		return connErr("ensure "+name, wb.Err)
	}
	if len(wb.tables[name]) == 0 {
		wb.tables[name] = [][]string{cloneRow(header)}
	}
	return nil
}

func (wb *MemoryWorkbook) Ping(context.Context) error {
	if wb.Err != nil {
		return connErr("ping", wb.Err)
	}
	return nil
}

func (wb *MemoryWorkbook) Close() error { return nil }

type memTable struct {
	wb   *MemoryWorkbook
	name string
}

func (t *memTable) Name() string { return t.name }

func (t *memTable) Values(context.Context) ([][]string, error) {
	t.wb.mu.RLock()
	defer t.wb.mu.RUnlock()
	if t.wb.Err != nil {
		return nil, connErr("read "+t.name, t.wb.Err)
	}
	src := t.wb.tables[t.name]
	out := make([][]string, len(src))
	for i, r := range src {
		out[i] = cloneRow(r)
	}
	return out, nil
}

func (t *memTable) Append(_ context.Context, row []string) error {
	t.wb.mu.Lock()
	defer t.wb.mu.Unlock()
	if t.wb.Err != nil {
		return connErr("append "+t.name, t.wb.Err)
	}
	t.wb.tables[t.name] = append(t.wb.tables[t.name], cloneRow(row))
	return nil
}

func (t *memTable) Update(_ context.Context, position int, row []string) error {
	t.wb.mu.Lock()
	defer t.wb.mu.Unlock()
	if t.wb.Err != nil {
		return connErr("update "+t.name, t.wb.Err)
	}
	vals := t.wb.tables[t.name]
	if err := checkPosition(position, len(vals)-1); err != nil {
		return err
	}
	vals[position+1] = cloneRow(row)
	return nil
}

func (t *memTable) Delete(_ context.Context, position int) error {
	t.wb.mu.Lock()
	defer t.wb.mu.Unlock()
	if t.wb.Err != nil {
		return connErr("delete "+t.name, t.wb.Err)
	}
	vals := t.wb.tables[t.name]
	if err := checkPosition(position, len(vals)-1); err != nil {
		return err
	}
	i := position + 1
	t.wb.tables[t.name] = append(vals[:i:i], vals[i+1:]...)
	return nil
}

func cloneRow(r []string) []string {
	return append([]string(nil), r...)
}
