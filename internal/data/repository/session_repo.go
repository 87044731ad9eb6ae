package repository

import (
	"context"
	"errors"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// FindValidSession returns nil when the token is unknown, revoked or expired.
	FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error)
	Revoke(ctx context.Context, token uuid.UUID) error
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Create(ctx context.Context, s *entity.Session) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sessions (id, user_id, token, expires_at, created_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.UserID, s.Token, s.ExpiresAt, s.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", s.UserID.String()))
		return fmt.Errorf("create session for user %s: %w", s.UserID.String(), err)
	}
	return nil
}

func (r *sessionRepository) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	query := `
		SELECT id, user_id, token, expires_at, created_at
		FROM sessions
		WHERE token = $1 AND revoked_at IS NULL AND expires_at > NOW()
	`

	var s entity.Session
	err := r.db.QueryRow(ctx, query, token).Scan(&s.ID, &s.UserID, &s.Token, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to look up session", zap.Error(err))
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}

// Revoke returns ErrNotFound when the token is unknown or already revoked.
func (r *sessionRepository) Revoke(ctx context.Context, token uuid.UUID) error {
	result, err := r.db.Exec(ctx,
		`UPDATE sessions SET revoked_at = NOW() WHERE token = $1 AND revoked_at IS NULL`, token)
	if err != nil {
		r.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session: %w", ErrNotFound)
	}
	return nil
}
