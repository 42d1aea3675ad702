package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/congo-pay/onboarding/internal/onboarding"
)

var (
	// ErrProfileExists is returned when a profile was already written for the account.
	ErrProfileExists = errors.New("profile already exists")
	// ErrProfileNotFound is returned by lookups for unknown accounts.
	ErrProfileNotFound = errors.New("profile not found")
)

// PostgresStore keeps profile documents in the profiles table, one row per account.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a Postgres-backed profile store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ onboarding.ProfileStore = (*PostgresStore)(nil)

// WriteProfile inserts the profile record keyed by its account id.
func (s *PostgresStore) WriteProfile(ctx context.Context, record onboarding.ProfileRecord) error {
	accountID, err := uuid.Parse(record.AccountID)
	if err != nil {
		return fmt.Errorf("parse account id: %w", err)
	}
	_, err = s.db.Exec(ctx, `INSERT INTO profiles (account_id, email, national_id, created_at)
        VALUES ($1, $2, $3, $4)`, accountID, record.Email, record.NationalID, record.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrProfileExists
	}
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}
