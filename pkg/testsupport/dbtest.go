// Package testsupport provides database helpers shared by repository tests.
package testsupport

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens a named in-memory SQLite database with foreign
// keys enabled. The name keeps parallel tests from sharing state.
func NewSQLiteMemoryDB(name string) (*sql.DB, error) {
	return sql.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared&_fk=1")
}
