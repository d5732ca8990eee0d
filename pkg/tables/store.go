package tables

import (
	"fmt"
	"sync"

	"relcore/pkg/logging"
	"relcore/pkg/qerr"
)

// TableStore holds the named tables a query can scan. The store itself is
// safe for concurrent use; the tables it hands out are read-only for the
// duration of any query, so no per-table locking is needed. There is no
// hidden global store: callers thread a store handle through the executor
// explicitly.
type TableStore struct {
	mutex  sync.RWMutex
	tables map[string]*Table
}

// NewTableStore creates a new empty table store.
func NewTableStore() *TableStore {
	return &TableStore{
		tables: make(map[string]*Table),
	}
}

// AddTable registers a table under its name, replacing any existing table
// with the same name.
func (ts *TableStore) AddTable(t *Table) error {
	if t == nil {
		return fmt.Errorf("table cannot be nil")
	}
	if t.Name == "" {
		return fmt.Errorf("table name cannot be empty")
	}

	ts.mutex.Lock()
	ts.tables[t.Name] = t
	ts.mutex.Unlock()

	logging.WithTable(t.Name).Debug("table registered", "rows", t.NumRows())
	return nil
}

// GetTable returns the table registered under the given name.
// Fails with NotFound if no such table exists.
func (ts *TableStore) GetTable(name string) (*Table, error) {
	ts.mutex.RLock()
	defer ts.mutex.RUnlock()

	t, exists := ts.tables[name]
	if !exists {
		return nil, qerr.Newf(qerr.NotFound, "table '%s' not found", name)
	}

	return t, nil
}

// TableNames returns the names of all registered tables.
func (ts *TableStore) TableNames() []string {
	ts.mutex.RLock()
	defer ts.mutex.RUnlock()

	names := make([]string, 0, len(ts.tables))
	for name := range ts.tables {
		names = append(names, name)
	}

	return names
}
