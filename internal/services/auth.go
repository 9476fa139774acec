package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userrepo "github.com/yungbote/tastebook-backend/internal/data/repos/user"
	types "github.com/yungbote/tastebook-backend/internal/domain"
	"github.com/yungbote/tastebook-backend/internal/platform/apierr"
	"github.com/yungbote/tastebook-backend/internal/platform/envutil"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

type RegisterInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type accessClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// AuthService issues JWT access tokens and rotating refresh tokens persisted
// in user_token. Refresh consumes the old row and writes a new pair.
type AuthService struct {
	db  *gorm.DB
	log *logger.Logger

	users  userrepo.UserRepo
	tokens userrepo.UserTokenRepo

	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, users userrepo.UserRepo, tokens userrepo.UserTokenRepo) *AuthService {
	return &AuthService{
		db:         db,
		log:        baseLog.With("service", "AuthService"),
		users:      users,
		tokens:     tokens,
		secret:     []byte(envutil.Str("JWT_SECRET", "dev-secret-change-me")),
		accessTTL:  time.Duration(envutil.Int("ACCESS_TOKEN_TTL_MINUTES", 60)) * time.Minute,
		refreshTTL: time.Duration(envutil.Int("REFRESH_TOKEN_TTL_HOURS", 720)) * time.Hour,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*UserView, *TokenPair, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, nil, apierr.Validation(errors.New("a valid email is required"))
	}
	if in.Username == "" {
		return nil, nil, apierr.Validation(errors.New("username is required"))
	}
	if len(in.Password) < 8 {
		return nil, nil, apierr.Validation(errors.New("password must be at least 8 characters"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	u := &types.User{
		ID:        uuid.New(),
		Email:     in.Email,
		Username:  in.Username,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	}
	var pair *TokenPair
	err = s.db.Transaction(func(tx *gorm.DB) error {
		emailTaken, err := s.users.EmailExists(ctx, tx, in.Email)
		if err != nil {
			return err
		}
		if emailTaken {
			return apierr.Conflict("email_taken", fmt.Errorf("email already registered"))
		}
		usernameTaken, err := s.users.UsernameExists(ctx, tx, in.Username)
		if err != nil {
			return err
		}
		if usernameTaken {
			return apierr.Conflict("username_taken", fmt.Errorf("username already registered"))
		}
		if _, err := s.users.Create(ctx, tx, []*types.User{u}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apierr.Conflict("user_exists", err)
			}
			return err
		}
		pair, err = s.issueTokens(ctx, tx, u.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("User registered", "user_id", u.ID)
	return projectUser(u, false), pair, nil
}

func (s *AuthService) Login(ctx context.Context, in Credentials) (*UserView, *TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	rows, err := s.users.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, apierr.New(401, "invalid_credentials", errors.New("unknown email or wrong password"))
	}
	u := rows[0]
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)); err != nil {
		return nil, nil, apierr.New(401, "invalid_credentials", errors.New("unknown email or wrong password"))
	}
	var pair *TokenPair
	err = s.db.Transaction(func(tx *gorm.DB) error {
		pair, err = s.issueTokens(ctx, tx, u.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("User logged in", "user_id", u.ID)
	return projectUser(u, false), pair, nil
}

// Refresh rotates a refresh token: the presented row is deleted and a fresh
// pair is written, so every refresh token works exactly once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var pair *TokenPair
	err := s.db.Transaction(func(tx *gorm.DB) error {
		rows, err := s.tokens.GetByRefreshTokens(ctx, tx, []string{refreshToken})
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return apierr.New(401, "invalid_refresh_token", errors.New("refresh token not recognized"))
		}
		row := rows[0]
		if time.Now().After(row.ExpiresAt) {
			_ = s.tokens.DeleteByIDs(ctx, tx, []uuid.UUID{row.ID})
			return apierr.New(401, "refresh_token_expired", errors.New("refresh token expired"))
		}
		if err := s.tokens.DeleteByIDs(ctx, tx, []uuid.UUID{row.ID}); err != nil {
			return err
		}
		pair, err = s.issueTokens(ctx, tx, row.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes every stored token for the user.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.tokens.DeleteByUserIDs(ctx, tx, []uuid.UUID{userID})
	})
}

// VerifyAccess parses and validates an access token and returns the subject
// user id. Used by the auth middleware.
func (s *AuthService) VerifyAccess(tokenString string) (uuid.UUID, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, apierr.New(401, "invalid_token", fmt.Errorf("invalid access token: %w", err))
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, apierr.New(401, "invalid_token", fmt.Errorf("malformed subject: %w", err))
	}
	return userID, nil
}

func (s *AuthService) issueTokens(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.accessTTL)
	claims := &accessClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	refresh := uuid.NewString() + uuid.NewString()
	row := &types.UserToken{
		ID:           uuid.New(),
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    now.Add(s.refreshTTL),
	}
	if _, err := s.tokens.Create(ctx, tx, []*types.UserToken{row}); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: accessExpiry}, nil
}
