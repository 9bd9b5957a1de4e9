package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/madad/app/models"
	"github.com/shashiranjanraj/madad/pkg/auth"
	"github.com/shashiranjanraj/madad/pkg/logger"
	"github.com/shashiranjanraj/madad/pkg/middleware"
)

// UserStore is the persistence contract the auth service needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, bool, error)
	FindByPhone(ctx context.Context, phone string) (models.User, bool, error)
	FindByID(ctx context.Context, id string) (models.User, bool, error)
	Create(ctx context.Context, user *models.User) error
}

// AuthService implements registration, login and token-subject resolution.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates a user and returns a fresh token. At least one of
// email/phone is required; each must be unused.
func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (models.TokenResponse, error) {
	email := deref(in.Email)
	phone := deref(in.Phone)

	if email == "" && phone == "" {
		return models.TokenResponse{}, ErrEmailOrPhoneRequired
	}

	if email != "" {
		if _, exists, err := s.users.FindByEmail(ctx, email); err != nil {
			return models.TokenResponse{}, err
		} else if exists {
			return models.TokenResponse{}, ErrEmailTaken
		}
	}
	if phone != "" {
		if _, exists, err := s.users.FindByPhone(ctx, phone); err != nil {
			return models.TokenResponse{}, err
		} else if exists {
			return models.TokenResponse{}, ErrPhoneTaken
		}
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.TokenResponse{}, err
	}

	now := time.Now().UTC()
	user := models.User{
		Name:           deref(in.Name),
		Email:          email,
		Phone:          phone,
		HashedPassword: hashed,
		Role:           models.RoleUser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		// The check above races with concurrent registrations; the unique
		// sparse indexes are the real arbiter.
		if mongo.IsDuplicateKeyError(err) {
			if email != "" {
				return models.TokenResponse{}, ErrEmailTaken
			}
			return models.TokenResponse{}, ErrPhoneTaken
		}
		return models.TokenResponse{}, err
	}

	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID.Hex())
	return s.tokenResponse(user)
}

// Login authenticates by email (preferred) or phone. Unknown identifier
// and wrong password both yield ErrInvalidCredentials so existence never
// leaks.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (models.TokenResponse, error) {
	email := deref(in.Email)
	phone := deref(in.Phone)

	if email == "" && phone == "" {
		return models.TokenResponse{}, ErrEmailOrPhoneRequired
	}

	var (
		user  models.User
		found bool
		err   error
	)
	if email != "" {
		user, found, err = s.users.FindByEmail(ctx, email)
	} else {
		user, found, err = s.users.FindByPhone(ctx, phone)
	}
	if err != nil {
		return models.TokenResponse{}, err
	}
	if !found || !auth.CheckPassword(user.HashedPassword, in.Password) {
		return models.TokenResponse{}, ErrInvalidCredentials
	}

	return s.tokenResponse(user)
}

// CurrentUser loads the user behind a resolved token subject.
func (s *AuthService) CurrentUser(ctx context.Context, subject string) (models.User, bool, error) {
	return s.users.FindByID(ctx, subject)
}

// ResolveIdentity adapts CurrentUser to the auth middleware contract.
// Store failures are treated as "not authenticated" — fail closed.
func (s *AuthService) ResolveIdentity(ctx context.Context, subject string) (middleware.Identity, bool) {
	user, found, err := s.users.FindByID(ctx, subject)
	if err != nil || !found {
		return middleware.Identity{}, false
	}
	return middleware.Identity{UserID: user.ID.Hex(), Role: user.Role}, true
}

func (s *AuthService) tokenResponse(user models.User) (models.TokenResponse, error) {
	token, err := auth.IssueToken(user.ID.Hex())
	if err != nil {
		return models.TokenResponse{}, err
	}
	return models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user.Public(),
	}, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
