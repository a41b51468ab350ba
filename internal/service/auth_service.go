package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/dto"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/models"
	"github.com/erkebulanlebayev-sketch/Narxoz-college/internal/repository"
)

const sessionTTL = 24 * time.Hour

// AuthService handles account registration and session issuance. Every
// attempt, successful or not, lands in the audit trail.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest, meta RequestMeta) (dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest, meta RequestMeta) (dto.AuthResponse, error)
	Logout(ctx context.Context, actorID uint, email, role string, meta RequestMeta) error
}

type authService struct {
	users     repository.UserRepository
	recorder  AuditRecorder
	validator *validator.Validate
	jwtSecret string
	logger    zerolog.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(users repository.UserRepository, recorder AuditRecorder, validate *validator.Validate, jwtSecret string, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		recorder:  recorder,
		validator: validate,
		jwtSecret: jwtSecret,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest, meta RequestMeta) (dto.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AuthResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		s.recordAuth(ctx, email, models.RoleUnknown, false, nil, meta)
		return dto.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Role:         req.Role,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, &user); err != nil {
		s.recordAuth(ctx, email, models.RoleUnknown, false, nil, meta)
		return dto.AuthResponse{}, err
	}

	// Account creation counts as an authentication event in the trail.
	s.recordAuth(ctx, email, user.Role, true, &user.ID, meta)

	return s.issueSession(user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest, meta RequestMeta) (dto.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AuthResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordAuth(ctx, email, models.RoleUnknown, false, nil, meta)
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.recordAuth(ctx, email, models.RoleUnknown, false, nil, meta)
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	s.recordAuth(ctx, email, user.Role, true, &user.ID, meta)

	return s.issueSession(*user)
}

func (s *authService) Logout(ctx context.Context, actorID uint, email, role string, meta RequestMeta) error {
	if err := s.recorder.RecordLogout(ctx, actorID, email, role, meta); err != nil {
		s.logger.Warn().Err(err).Msg("logout event not recorded")
	}
	return nil
}

func (s *authService) issueSession(user models.User) (dto.AuthResponse, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(sessionTTL).Unix(),
		"iat":   time.Now().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return dto.AuthResponse{}, err
	}

	return dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// recordAuth pushes an authentication event and absorbs dispatch failures;
// the sign-in flow must never fail because the audit queue is busy.
func (s *authService) recordAuth(ctx context.Context, email, role string, succeeded bool, actorID *uint, meta RequestMeta) {
	if err := s.recorder.RecordAuthentication(ctx, email, role, succeeded, actorID, meta); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("authentication event not recorded")
	}
}
