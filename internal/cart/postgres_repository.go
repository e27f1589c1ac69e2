package cart

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository persists user carts in the cart_lines table, one row per
// line with an explicit position to preserve insertion order.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed cart repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Load reads all lines for the scope in insertion order. An unknown scope
// yields an empty cart.
func (r *PostgresRepository) Load(ctx context.Context, scope Scope) (Cart, error) {
	rows, err := r.db.Query(ctx, `SELECT item_id, name, unit_price, quantity
        FROM cart_lines WHERE owner_key = $1 ORDER BY position`, scope.Key())
	if err != nil {
		return Cart{}, err
	}
	defer rows.Close()

	var c Cart
	for rows.Next() {
		var line Line
		if err := rows.Scan(&line.ItemID, &line.Name, &line.UnitPrice, &line.Quantity); err != nil {
			return Cart{}, err
		}
		c.Lines = append(c.Lines, line)
	}
	return c, rows.Err()
}

// Save replaces the stored cart for the scope in a single transaction so no
// partially written cart is ever observable.
func (r *PostgresRepository) Save(ctx context.Context, scope Scope, c Cart) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE owner_key = $1`, scope.Key()); err != nil {
		return err
	}
	for i, line := range c.Lines {
		if _, err := tx.Exec(ctx, `INSERT INTO cart_lines (owner_key, item_id, name, unit_price, quantity, position)
            VALUES ($1, $2, $3, $4, $5, $6)`, scope.Key(), line.ItemID, line.Name, line.UnitPrice, line.Quantity, i); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Clear removes every line for the scope.
func (r *PostgresRepository) Clear(ctx context.Context, scope Scope) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_lines WHERE owner_key = $1`, scope.Key())
	return err
}
