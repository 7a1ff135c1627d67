package formstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cadastro-app/cadastro/internal/form"
)

// UpdateFunc mutates a draft inside a Repository.Update call. Returning an
// error aborts the update.
type UpdateFunc func(d *Draft) error

// Repository persists drafts.
type Repository interface {
	Create(ctx context.Context, draft Draft) error
	Get(ctx context.Context, id string) (Draft, error)
	// Update applies fn to the stored draft atomically and returns the result.
	Update(ctx context.Context, id string, fn UpdateFunc) (Draft, error)
}

// PostgresRepository stores drafts in PostgreSQL with the form data as JSONB.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed draft repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new draft.
func (r *PostgresRepository) Create(ctx context.Context, draft Draft) error {
	draftID, err := uuid.Parse(draft.ID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(draft.Data)
	if err != nil {
		return fmt.Errorf("encode draft data: %w", err)
	}
	_, err = r.db.Exec(ctx, `INSERT INTO drafts (id, data, token_hash, created_at, updated_at, submitted_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		draftID, data, draft.TokenHash, draft.CreatedAt.UTC(), draft.UpdatedAt.UTC(), utcPtr(draft.SubmittedAt))
	return err
}

// Get fetches a draft by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Draft, error) {
	draftID, err := uuid.Parse(id)
	if err != nil {
		return Draft{}, ErrNotFound
	}
	return scanDraft(r.db.QueryRow(ctx, selectDraft+` WHERE id = $1`, draftID))
}

// Update locks the row, applies fn and writes the result in one transaction.
func (r *PostgresRepository) Update(ctx context.Context, id string, fn UpdateFunc) (Draft, error) {
	draftID, err := uuid.Parse(id)
	if err != nil {
		return Draft{}, ErrNotFound
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Draft{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	draft, err := scanDraft(tx.QueryRow(ctx, selectDraft+` WHERE id = $1 FOR UPDATE`, draftID))
	if err != nil {
		return Draft{}, err
	}
	if err := fn(&draft); err != nil {
		return Draft{}, err
	}

	data, err := json.Marshal(draft.Data)
	if err != nil {
		return Draft{}, fmt.Errorf("encode draft data: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE drafts SET data = $1, updated_at = $2, submitted_at = $3 WHERE id = $4`,
		data, draft.UpdatedAt.UTC(), utcPtr(draft.SubmittedAt), draftID); err != nil {
		return Draft{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

const selectDraft = `SELECT id, data, token_hash, created_at, updated_at, submitted_at FROM drafts`

func scanDraft(row pgx.Row) (Draft, error) {
	var (
		id          uuid.UUID
		data        []byte
		draft       Draft
		submittedAt *time.Time
	)
	if err := row.Scan(&id, &data, &draft.TokenHash, &draft.CreatedAt, &draft.UpdatedAt, &submittedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Draft{}, ErrNotFound
		}
		return Draft{}, err
	}
	var fd form.Data
	if err := json.Unmarshal(data, &fd); err != nil {
		return Draft{}, fmt.Errorf("decode draft data: %w", err)
	}
	draft.ID = id.String()
	draft.Data = fd
	draft.CreatedAt = draft.CreatedAt.UTC()
	draft.UpdatedAt = draft.UpdatedAt.UTC()
	draft.SubmittedAt = utcPtr(submittedAt)
	return draft, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
