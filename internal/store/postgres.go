package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup matches no rows.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when signup reuses an existing email.
var ErrEmailTaken = errors.New("email already registered")

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) CreateUser(ctx context.Context, name, email, passwordHash string) (User, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = LOWER($1))`, email).Scan(&exists)
	if err != nil {
		return User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return User{}, ErrEmailTaken
	}

	const insertUser = `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, LOWER($2), $3)
		RETURNING id, name, email, password_hash, created_at
	`
	var user User
	err = s.db.QueryRowContext(ctx, insertUser, name, email, passwordHash).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	const query = `SELECT id, name, email, password_hash, created_at FROM users WHERE email = LOWER($1)`
	var user User
	err := s.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("lookup user by email: %w", err)
	}
	return user, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, userID string) (User, error) {
	const query = `SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1`
	var user User
	err := s.db.QueryRowContext(ctx, query, userID).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("lookup user by id: %w", err)
	}
	return user, nil
}

func (s *PostgresStore) InsertGeneration(ctx context.Context, rec GenerationRecord) error {
	const insert = `
		INSERT INTO generation_history
			(id, user_id, kind, title, snippet, document_type, format, page_count, num_images, request)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, insert,
		rec.ID, rec.UserID, rec.Kind, rec.Title, rec.Snippet,
		rec.DocumentType, rec.Format, rec.PageCount, rec.NumImages, rec.Request)
	if err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetGeneration(ctx context.Context, id string) (GenerationRecord, error) {
	const query = `
		SELECT id, user_id, kind, title, snippet, document_type, format, page_count, num_images, request, created_at
		FROM generation_history
		WHERE id = $1
	`
	var rec GenerationRecord
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.UserID, &rec.Kind, &rec.Title, &rec.Snippet,
		&rec.DocumentType, &rec.Format, &rec.PageCount, &rec.NumImages, &rec.Request, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GenerationRecord{}, ErrNotFound
	}
	if err != nil {
		return GenerationRecord{}, fmt.Errorf("lookup generation: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) ListGenerations(ctx context.Context, userID string, limit int) ([]GenerationRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
		SELECT id, user_id, kind, title, snippet, document_type, format, page_count, num_images, request, created_at
		FROM generation_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	records := make([]GenerationRecord, 0)
	for rows.Next() {
		var rec GenerationRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Kind, &rec.Title, &rec.Snippet,
			&rec.DocumentType, &rec.Format, &rec.PageCount, &rec.NumImages, &rec.Request, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *PostgresStore) DeleteGeneration(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM generation_history WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete generation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete generation: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
