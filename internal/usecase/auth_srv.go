package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	expiry   time.Duration
	log      *zap.Logger
}

func NewAuthService(repo *repository.Repository, config utils.SessionConfig, log *zap.Logger) AuthService {
	expiry := time.Duration(config.ExpiryHours) * time.Hour
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &authService{
		users:    repo.User,
		sessions: repo.Session,
		expiry:   expiry,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if fields := utils.ValidateFields(req); len(fields) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", fields))
		return nil, &ValidationError{Fields: fields}
	}

	role, err := entity.ParseUserRole(req.Role)
	if err != nil {
		return nil, &ValidationError{Fields: []utils.FieldError{{Field: "role", Message: err.Error()}}}
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.NewBase(now),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         role,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		// the account exists, the client can log in explicitly
		s.log.Warn("Failed to create session after register",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if fields := utils.ValidateFields(req); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return ErrUnauthenticated
	}

	if err := s.sessions.Revoke(ctx, tokenUUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUnauthenticated
		}
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		Record: entity.NewRecord(now),
		UserID:    userID,
		Token:     uuid.New(),
		ExpiresAt: now.Add(s.expiry),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
