package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/soulcompass/soulcoach-backend/internal/logger"
	"github.com/soulcompass/soulcoach-backend/internal/normalization"
	"github.com/soulcompass/soulcoach-backend/internal/repos"
	"github.com/soulcompass/soulcoach-backend/internal/requestdata"
	"github.com/soulcompass/soulcoach-backend/internal/types"
	"github.com/soulcompass/soulcoach-backend/internal/utils"
)

type JWTClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*types.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *types.User, err error)
	Refresh(ctx context.Context) (accessToken, refreshToken string, err error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	users        repos.UserRepo
	tokens       repos.UserTokenRepo
	jwtSecretKey string
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		users:        userRepo,
		tokens:       userTokenRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

func (as *authService) Register(ctx context.Context, email, password, fullName string) (*types.User, error) {
	email = normalization.ParseEmail(email)
	fullName = normalization.ParseInputString(fullName)
	if err := utils.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrValidation)
	}

	exists, err := as.users.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &types.User{
		Email:        email,
		Password:     hash,
		FullName:     fullName,
		Role:         types.RoleUser,
		CurrentStage: 1,
	}
	return as.users.Create(ctx, nil, user)
}

func (as *authService) Login(ctx context.Context, email, password string) (string, string, *types.User, error) {
	email = normalization.ParseEmail(email)

	user, err := as.users.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	var accessToken, refreshToken string
	txErr := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// one token pair per user; a new login replaces the old session
		if err := as.tokens.DeleteByUserID(ctx, tx, user.ID); err != nil {
			return fmt.Errorf("clear previous tokens: %w", err)
		}
		tok, err := as.generateAccessToken(user)
		if err != nil {
			return fmt.Errorf("generate access token: %w", err)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		userToken := &types.UserToken{
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		_, err = as.tokens.Create(ctx, tx, userToken)
		return err
	})
	if txErr != nil {
		return "", "", nil, txErr
	}
	return accessToken, refreshToken, user, nil
}

func (as *authService) Refresh(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", fmt.Errorf("%w: missing refresh token", ErrUnauthorized)
	}

	var accessToken, newRefreshToken string
	txErr := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.tokens.GetByRefreshToken(ctx, tx, rd.RefreshToken)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("%w: unknown refresh token", ErrUnauthorized)
		}
		if existing.ExpiresAt.Before(time.Now()) {
			if err := as.tokens.Delete(ctx, tx, existing.ID); err != nil {
				return err
			}
			return fmt.Errorf("%w: refresh token expired", ErrUnauthorized)
		}

		user, err := as.users.GetByID(ctx, tx, existing.UserID)
		if err != nil {
			return fmt.Errorf("load user for refresh: %w", err)
		}
		tok, err := as.generateAccessToken(user)
		if err != nil {
			return fmt.Errorf("generate access token: %w", err)
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()
		replacement := &types.UserToken{
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.tokens.Create(ctx, tx, replacement); err != nil {
			return err
		}
		return as.tokens.Delete(ctx, tx, existing.ID)
	})
	if txErr != nil {
		return "", "", txErr
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return fmt.Errorf("%w: no session", ErrUnauthorized)
	}
	token, err := as.tokens.GetByAccessToken(ctx, nil, rd.TokenString)
	if err != nil {
		return err
	}
	if token == nil {
		return nil
	}
	return as.tokens.Delete(ctx, nil, token.ID)
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// SetContextFromToken verifies the bearer token and loads the request data
// (user id, role, refresh token) into the context for downstream layers.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("%w: invalid subject", ErrUnauthorized)
	}

	var refreshToken string
	if stored, err := as.tokens.GetByAccessToken(ctx, nil, tokenString); err == nil && stored != nil {
		refreshToken = stored.RefreshToken
	}

	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: refreshToken,
		UserID:       userID,
		Role:         claims.Role,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
