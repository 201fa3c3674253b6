package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaiwen/items-api/internal/models"
)

var (
	// ErrNotFound is returned when no row matches the requested key.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when a registration hits the unique
	// constraint on users.email.
	ErrEmailTaken = errors.New("email already registered")
)

// uniqueViolation is the SQLSTATE raised by the users.email constraint.
const uniqueViolation = "23505"

// PostgresStore handles item and user CRUD against PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the items and users tables if they don't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS items (
			id          BIGSERIAL PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT
		);
		CREATE TABLE IF NOT EXISTS users (
			id              BIGSERIAL PRIMARY KEY,
			email           TEXT UNIQUE NOT NULL,
			hashed_password TEXT NOT NULL,
			is_active       BOOLEAN NOT NULL DEFAULT TRUE
		);
	`)
	return err
}

// Ping verifies database connectivity with a round trip.
func (s *PostgresStore) Ping(ctx context.Context) error {
	var one int
	return s.pool.QueryRow(ctx, `SELECT 1`).Scan(&one)
}

func (s *PostgresStore) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	var it models.Item
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, description FROM items WHERE id = $1`, id,
	).Scan(&it.ID, &it.Name, &it.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

func (s *PostgresStore) ListItems(ctx context.Context, skip, limit int) ([]models.Item, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, description FROM items ORDER BY id LIMIT $1 OFFSET $2`,
		limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var it models.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *PostgresStore) CreateItem(ctx context.Context, name string, description *string) (*models.Item, error) {
	var it models.Item
	err := s.pool.QueryRow(ctx,
		`INSERT INTO items (name, description)
		 VALUES ($1, $2)
		 RETURNING id, name, description`,
		name, description,
	).Scan(&it.ID, &it.Name, &it.Description)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return &it, nil
}

// UpdateItem replaces both fields of the row; there is no partial update.
func (s *PostgresStore) UpdateItem(ctx context.Context, id int64, name string, description *string) (*models.Item, error) {
	var it models.Item
	err := s.pool.QueryRow(ctx,
		`UPDATE items
		 SET name = $1, description = $2
		 WHERE id = $3
		 RETURNING id, name, description`,
		name, description, id,
	).Scan(&it.ID, &it.Name, &it.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return &it, nil
}

// DeleteItem removes the row and returns it as it existed before deletion.
func (s *PostgresStore) DeleteItem(ctx context.Context, id int64) (*models.Item, error) {
	var it models.Item
	err := s.pool.QueryRow(ctx,
		`DELETE FROM items WHERE id = $1 RETURNING id, name, description`, id,
	).Scan(&it.ID, &it.Name, &it.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete item: %w", err)
	}
	return &it, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, hashed_password, is_active FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.HashedPassword, &u.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, email, hashedPassword string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (email, hashed_password)
		 VALUES ($1, $2)
		 RETURNING id, email, hashed_password, is_active`,
		email, hashedPassword,
	).Scan(&u.ID, &u.Email, &u.HashedPassword, &u.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}
