package local

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/chaimtop/studygo/core/session"
)

type sessionRepository struct {
	db *sqlx.DB
}

var _ session.Repository = (*sessionRepository)(nil)

func NewSessionRepository(db *sqlx.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

// Get returns the stored value for key; a missing key is "", not an error.
func (repo sessionRepository) Get(key string) (string, error) {
	var value string
	err := repo.db.Get(&value, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (repo sessionRepository) Set(key, value string) error {
	_, err := repo.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (repo sessionRepository) Delete(key string) error {
	_, err := repo.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}
