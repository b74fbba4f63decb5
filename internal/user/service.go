package user

import (
	"context"
	"errors"

	"fitcourse/internal/audit"
	"fitcourse/internal/auth"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*User, string, string, error)
	GetByID(ctx context.Context, userID int) (*User, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, *User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]User, error)
	ChangeRole(ctx context.Context, adminID int, adminEmail string, targetUserID int, role string) (*User, error)
}

type service struct {
	repo      Repository
	auditLog  *audit.Log
	jwtSecret string
}

func NewService(repo Repository, auditLog *audit.Log, jwtSecret string) Service {
	return &service{
		repo:      repo,
		auditLog:  auditLog,
		jwtSecret: jwtSecret,
	}
}

func tokenSubject(u *User) auth.TokenSubject {
	return auth.TokenSubject{
		UserID:             u.ID,
		Email:              u.Email,
		Role:               u.Role,
		SubscriptionID:     u.SubscriptionIDString(),
		SubscriptionStatus: u.SubscriptionStatusString(),
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, string, string, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	user, err := s.repo.Create(ctx, req.Name, req.Email, passwordHash, "member")
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := auth.GenerateTokens(tokenSubject(user), s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*User, string, string, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(tokenSubject(user), s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) GetByID(ctx context.Context, userID int) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *User, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, ErrUserNotFound
	}

	// Re-issue against the current user record so a refresh picks up
	// role and subscription changes made since the original login.
	newAccessToken, err := auth.GenerateAccessToken(tokenSubject(user), s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, user, nil
}

func (s *service) ListUsers(ctx context.Context, limit, offset int) ([]User, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *service) ChangeRole(ctx context.Context, adminID int, adminEmail string, targetUserID int, role string) (*User, error) {
	before, err := s.repo.FindByID(ctx, targetUserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := s.repo.UpdateRole(ctx, targetUserID, role)
	if err != nil {
		return nil, err
	}

	if s.auditLog != nil {
		_ = s.auditLog.Append(audit.Entry{
			Action:       audit.ActionChangeRole,
			AdminID:      adminID,
			AdminEmail:   adminEmail,
			TargetUserID: targetUserID,
			Detail:       before.Role + " -> " + role,
		})
	}

	return user, nil
}
