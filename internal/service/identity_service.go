package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
	"github.com/SamSantos7/irland-casa-estudantes/internal/repo/postgres"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/auth"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/config"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/events"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/logger"
)

type IdentityService interface {
	// EnsureForDraft reuses the profile matched by the draft's phone number,
	// updating its personal fields in place, or creates a new identity with a
	// generated password. The second return reports whether an identity was
	// created.
	EnsureForDraft(ctx context.Context, draft *domain.Draft) (*domain.User, bool, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
	SetPassword(ctx context.Context, req *domain.SetPasswordRequest) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, id int64, req *domain.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type identityService struct {
	userRepo  postgres.UserRepository
	tokenRepo postgres.SetupTokenRepository
	eventBus  events.EventBus
	config    *config.Config
}

func NewIdentityService(
	userRepo postgres.UserRepository,
	tokenRepo postgres.SetupTokenRepository,
	eventBus events.EventBus,
	config *config.Config,
) IdentityService {
	return &identityService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		eventBus:  eventBus,
		config:    config,
	}
}

func (s *identityService) EnsureForDraft(ctx context.Context, draft *domain.Draft) (*domain.User, bool, error) {
	phone := domain.NormalizePhone(draft.Phone)
	email := domain.NormalizeEmail(draft.Email)

	existing, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up profile by phone: %w", err)
	}

	if existing != nil {
		updated, err := s.userRepo.UpdatePersonal(ctx, existing.ID, draft.FirstName, draft.LastName, email, draft.Nationality)
		if err != nil {
			return nil, false, fmt.Errorf("failed to update profile: %w", err)
		}
		return updated, false, nil
	}

	// The generated password is never shown to anyone; the student picks
	// their own through the emailed setup link.
	passwordHash, err := argon2id.CreateHash(uuid.NewString(), argon2id.DefaultParams)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash generated password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Role:         domain.RoleClient,
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    draft.FirstName,
		LastName:     draft.LastName,
		Phone:        phone,
		Nationality:  draft.Nationality,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to create identity: %w", err)
	}

	setupToken := uuid.NewString()
	expiresAt := time.Now().Add(s.config.Auth.PasswordSetupTTL)
	if err := s.tokenRepo.Create(ctx, user.ID, setupToken, expiresAt); err != nil {
		return nil, false, fmt.Errorf("failed to create password setup token: %w", err)
	}

	event := events.IdentityCreatedEvent{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.FullName(),
		Phone:      user.Phone,
		SetupToken: setupToken,
	}
	if err := s.eventBus.Publish(ctx, events.IdentityCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish identity created event", "error", err, "user_id", user.ID)
	}

	return user, true, nil
}

func (s *identityService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	valid, err := argon2id.ComparePasswordAndHash(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("invalid credentials")
	}

	accessToken, err := auth.NewAccessToken(
		user.ID, user.Email, user.Role, s.scopeFor(user.Role),
		s.config.Auth.JWTSecret, s.config.Auth.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, err := auth.NewAccessToken(
		user.ID, user.Email, "refresh", "refresh",
		s.config.Auth.JWTSecret, s.config.Auth.RefreshTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return &domain.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.Auth.AccessTokenTTL.Seconds()),
		User:         user.ToUserInfo(),
	}, nil
}

func (s *identityService) SetPassword(ctx context.Context, req *domain.SetPasswordRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	userID, err := s.tokenRepo.Consume(ctx, req.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to consume setup token: %w", err)
	}
	if userID == 0 {
		return nil, fmt.Errorf("invalid or expired setup token")
	}

	hash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.SetPasswordHash(ctx, userID, hash); err != nil {
		return nil, fmt.Errorf("failed to set password: %w", err)
	}

	return s.userRepo.FindByID(ctx, userID)
}

func (s *identityService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *identityService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *identityService) UpdateUser(ctx context.Context, id int64, req *domain.UpdateUserRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return s.userRepo.Update(ctx, id, req)
}

func (s *identityService) DeleteUser(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *identityService) scopeFor(role string) string {
	switch role {
	case domain.RoleAdmin:
		return "admin.all"
	default:
		return "client.reservations:read client.documents:read"
	}
}
