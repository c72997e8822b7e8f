package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/common"
	"github.com/dmitrijs2005/tailorhub/internal/dbx"
)

// Store is the subset of *sql.DB the repository needs.
type Store interface {
	dbx.DBTX
	dbx.TxBeginner
}

type SQLiteRepository struct {
	db  Store
	now func() time.Time
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db Store) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Load(ctx context.Context) (models.Credential, error) {
	var c models.Credential
	err := r.db.QueryRowContext(ctx,
		`SELECT token, user_id, saved_at FROM credentials WHERE id = 1`,
	).Scan(&c.Token, &c.UserID, &c.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Credential{}, common.ErrorNotFound
	}
	if err != nil {
		return models.Credential{}, fmt.Errorf("failed to load credential: %w", err)
	}
	return c, nil
}

// Save replaces the stored credential. A zero SavedAt is set to now.
func (r *SQLiteRepository) Save(ctx context.Context, c models.Credential) error {
	if c.Token == "" {
		return common.NewValidationError("token", "must not be empty")
	}
	if c.SavedAt.IsZero() {
		c.SavedAt = r.now().UTC()
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
			return fmt.Errorf("failed to replace credential: %w", err)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO credentials (id, token, user_id, saved_at) VALUES (1, ?, ?, ?)`,
			c.Token, c.UserID, c.SavedAt)
		if err != nil {
			return fmt.Errorf("failed to save credential: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}
