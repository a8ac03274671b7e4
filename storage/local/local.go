// Package local is the durable key-value store behind the session: a single
// sqlite file so the token and profile survive process restarts.
package local

import (
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/chaimtop/studygo/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// Open opens (creating if needed) the local store at conf.Storage.Path.
func Open(conf *core.Config) (*sqlx.DB, error) {
	return OpenPath(conf.Storage.Path)
}

// OpenPath opens the local store at an explicit path.
func OpenPath(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "creating storage directory")
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening local store")
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "configuring local store")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "migrating local store")
	}
	return db, nil
}
