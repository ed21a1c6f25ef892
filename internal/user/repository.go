package user

import (
	"context"
	"database/sql"

	"shopfront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, username, email, passwordHash string) (User, error)
	FindByEmail(email string) (User, error)
	FindByID(id uint) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, username, email, passwordHash string) (User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id, username, email, password_hash, is_admin",
		username, email, passwordHash,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.IsAdmin)

	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("username", username),
			zap.String("email", email),
			zap.Error(err),
		)
	}

	return u, err
}

func (r *repository) FindByEmail(email string) (User, error) {
	var u User
	err := r.db.QueryRow(
		"SELECT id, username, email, password_hash, is_admin FROM users WHERE email = $1",
		email,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.IsAdmin)

	return u, err
}

func (r *repository) FindByID(id uint) (User, error) {
	var u User
	err := r.db.QueryRow(
		"SELECT id, username, email, password_hash, is_admin FROM users WHERE id = $1",
		id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.IsAdmin)

	return u, err
}
