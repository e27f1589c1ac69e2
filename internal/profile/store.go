package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound reports that no profile record exists for the requested user.
var ErrNotFound = errors.New("profile not found")

// Store persists profile records.
type Store interface {
	Fetch(ctx context.Context, userID string) (Profile, error)
	Insert(ctx context.Context, p Profile) error
}

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a Postgres-backed profile store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Fetch loads the profile for the given user id. Missing records yield
// ErrNotFound so callers can distinguish absence from store failures.
func (s *PostgresStore) Fetch(ctx context.Context, userID string) (Profile, error) {
	row := s.db.QueryRow(ctx, `SELECT id, full_name, phone_number, role, address
        FROM profiles WHERE id = $1`, userID)

	var p Profile
	var role string
	if err := row.Scan(&p.UserID, &p.FullName, &p.PhoneNumber, &role, &p.Address); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	p.Role = Role(role)
	return p, nil
}

// Insert writes a new profile record.
func (s *PostgresStore) Insert(ctx context.Context, p Profile) error {
	_, err := s.db.Exec(ctx, `INSERT INTO profiles (id, full_name, phone_number, role, address)
        VALUES ($1, $2, $3, $4, $5)`, p.UserID, p.FullName, p.PhoneNumber, string(p.Role), p.Address)
	return err
}
