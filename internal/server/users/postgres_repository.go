package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hwidgate/internal/dbx"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE of a unique constraint violation.
const pgUniqueViolation = "23505"

const userColumns = `id, username, password_hash, hwid, banned, subscribed_until, created_at`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func scanUser(row *sql.Row) (*User, error) {
	var (
		u     User
		until sql.NullTime
	)
	err := row.Scan(&u.ID, &u.UserName, &u.PasswordHash, &u.HWID, &u.Banned, &until, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if until.Valid {
		u.SubscribedUntil = until.Time.UTC()
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {
	query :=
		`INSERT INTO users (id, username, password_hash, hwid, banned, subscribed_until, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.UserName, user.PasswordHash, user.HWID, user.Banned,
		nullTime(user.SubscribedUntil), user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetUserByLogin matches the username case-insensitively.
func (r *PostgresRepository) GetUserByLogin(ctx context.Context, login string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(username) = lower($1)`
	return scanUser(r.db.QueryRowContext(ctx, query, login))
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// Update locks the row, applies fn and writes back the mutable columns in one
// transaction.
func (r *PostgresRepository) Update(ctx context.Context, id string, fn func(u *User) error) (*User, error) {
	var updated *User
	err := dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := scanUser(tx.QueryRowContext(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		if err := fn(u); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET hwid = $2, banned = $3, subscribed_until = $4 WHERE id = $1`,
			u.ID, u.HWID, u.Banned, nullTime(u.SubscribedUntil))
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

const checkoutColumns = `session_id, user_id, months, created_at, completed_at`

type PostgresCheckoutRepository struct {
	db *sql.DB
}

func NewPostgresCheckoutRepository(db *sql.DB) *PostgresCheckoutRepository {
	return &PostgresCheckoutRepository{db: db}
}

func scanCheckout(row *sql.Row) (*Checkout, error) {
	var (
		c    Checkout
		done sql.NullTime
	)
	if err := row.Scan(&c.SessionID, &c.UserID, &c.Months, &c.CreatedAt, &done); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCheckoutNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if done.Valid {
		c.CompletedAt = done.Time.UTC()
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (r *PostgresCheckoutRepository) Create(ctx context.Context, c *Checkout) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO checkouts (session_id, user_id, months, created_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.SessionID, c.UserID, c.Months, c.CreatedAt, nullTime(c.CompletedAt))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresCheckoutRepository) Get(ctx context.Context, sessionID string) (*Checkout, error) {
	return scanCheckout(r.db.QueryRowContext(ctx,
		`SELECT `+checkoutColumns+` FROM checkouts WHERE session_id = $1`, sessionID))
}

func (r *PostgresCheckoutRepository) Complete(ctx context.Context, sessionID string, fn func(c *Checkout) error) (*Checkout, error) {
	var updated *Checkout
	err := dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		c, err := scanCheckout(tx.QueryRowContext(ctx,
			`SELECT `+checkoutColumns+` FROM checkouts WHERE session_id = $1 FOR UPDATE`, sessionID))
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE checkouts SET completed_at = $2 WHERE session_id = $1`,
			c.SessionID, nullTime(c.CompletedAt))
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
