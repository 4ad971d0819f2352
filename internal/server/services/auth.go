package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jtech/tasklist/internal/common"
	"github.com/jtech/tasklist/internal/server/auth"
	"github.com/jtech/tasklist/internal/server/config"
	"github.com/jtech/tasklist/internal/server/models"
	"github.com/jtech/tasklist/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a longer-lived refresh
// token, plus the scheme marker the client should present them with.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// AuthService is the trust boundary: it handles registration, login, token
// refresh, and per-request identity resolution.
type AuthService struct {
	db                           *sql.DB
	repos                        repomanager.RepositoryManager
	hasher                       auth.Hasher
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration

	// dummyDigest is verified against on the unknown-email login branch so
	// both failure branches cost a comparable amount of time.
	dummyDigest []byte
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, h auth.Hasher, cfg *config.Config) *AuthService {
	dummy, _ := h.Hash("tasklist.dummy.credential")
	return &AuthService{
		db:                           db,
		repos:                        m,
		hasher:                       h,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		dummyDigest:                  dummy,
	}
}

// NormalizeEmail trims surrounding whitespace and lowercases the address so
// lookups and the unique constraint agree on one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user. A duplicate email yields ErrDuplicateEmail,
// whether caught by the pre-check or by the store's unique constraint after a
// check-then-insert race.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	v := &common.ValidationError{}
	name = checkRequired(v, "name", name, maxNameLen)
	email = NormalizeEmail(email)
	if email == "" {
		v.Add("email", "email is required")
	} else if !strings.Contains(email, "@") {
		v.Add("email", "email is invalid")
	} else if len(email) > maxNameLen {
		v.Add("email", fmt.Sprintf("email must be at most %d characters", maxNameLen))
	}
	if len(password) < 6 {
		v.Add("password", "password must be at least 6 characters")
	} else if len(password) > 72 {
		v.Add("password", "password must be at most 72 characters")
	}
	if err := v.ErrOrNil(); err != nil {
		return nil, err
	}

	repo := s.repos.Users(s.db)

	// Cheap pre-check; the unique constraint remains authoritative.
	exists, err := repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, common.ErrDuplicateEmail
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: digest})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and mints a token pair. An unknown email and
// a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.Verify(password, s.dummyDigest)
			return nil, nil, common.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("looking up user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil, common.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh validates a refresh token and mints a new pair for the same user.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := auth.ParseToken(refreshToken, auth.KindRefresh, s.jwtSecret)
	if err != nil {
		return nil, common.ErrUnauthenticated
	}

	if _, err := s.repos.Users(s.db).GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	return s.issueTokens(userID)
}

// ResolveIdentity verifies an access token and loads the user it is bound to.
// Missing, malformed, expired, and badly-signed tokens all collapse into
// ErrUnauthenticated. Invoked once per request by the transport middleware.
func (s *AuthService) ResolveIdentity(ctx context.Context, accessToken string) (*models.User, error) {
	if accessToken == "" {
		return nil, common.ErrUnauthenticated
	}

	userID, err := auth.ParseToken(accessToken, auth.KindAccess, s.jwtSecret)
	if err != nil {
		return nil, common.ErrUnauthenticated
	}

	user, err := s.repos.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issueTokens(userID string) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, auth.KindAccess, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("issuing access token: %w", err)
	}
	refresh, err := auth.GenerateToken(userID, auth.KindRefresh, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("issuing refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "Bearer"}, nil
}
