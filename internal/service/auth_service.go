package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"leavedesk/internal/auth"
	"leavedesk/internal/errors"
	"leavedesk/internal/model"
	"leavedesk/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = stderrors.New("invalid email or password")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = stderrors.New("invalid or expired refresh token")
)

// AuthService handles sign-in, sign-out and the identity gate. Passwords
// are bcrypt hashed and sessions are carried by JWTs validated per request;
// the sessions table only records sign-ins.
type AuthService interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	CurrentUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	LastSignIn(ctx context.Context, userID uuid.UUID) (*model.Session, error)
	ListEmployees(ctx context.Context) ([]model.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtService  *auth.JWTService
	tokenStore  auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		tokenStore:  tokenStore,
	}
}

// Login authenticates a user by exact email match and bcrypt password
// comparison, records a session row, and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	// Session-creation failures are the one store error surfaced to the
	// sign-in form.
	session := &model.Session{UserID: user.ID}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", "", nil, fmt.Errorf("create session: %w", err)
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID.String(), user.Email, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// Refresh validates a refresh token and returns a new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", ErrInvalidRefreshToken
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(userID, claims.Email, claims.IsAdmin)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout drops the refresh token and removes the user's session rows.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, tokenID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return ErrInvalidRefreshToken
	}
	return s.sessionRepo.DeleteByUserID(ctx, userID)
}

// CurrentUser loads the user behind a validated token. A missing user means
// the client must sign in again.
func (s *authService) CurrentUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// LastSignIn returns the most recent session row for a user, or nil when
// none exists.
func (s *authService) LastSignIn(ctx context.Context, userID uuid.UUID) (*model.Session, error) {
	session, err := s.sessionRepo.FindLatestByUser(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

// ListEmployees returns all non-admin users, the availability roster.
func (s *authService) ListEmployees(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListEmployees(ctx)
}
