package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodgram/domain"
	"foodgram/internal/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	issuer          = "FOODGRAM"
	purposeLogin    = "login"
	purposeResetPwd = "reset_password"
)

type (
	JWTService interface {
		GenerateTokenUser(userID string) (string, error)
		GetUserIDByToken(ctx context.Context, token string) (string, error)
		RevokeToken(ctx context.Context, token string) error
		GenerateTokenResetPassword(userID string, duration time.Duration) (string, error)
		GetUserIDByResetToken(ctx context.Context, token string) (string, error)
		RevokeResetToken(ctx context.Context, token string) error
	}

	jwtUserClaim struct {
		UserID  string `json:"user_id"`
		Purpose string `json:"purpose"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
		blacklist TokenBlacklist
		now       func() time.Time
	}
)

func NewJWTService(blacklist TokenBlacklist) JWTService {
	ttl := time.Duration(utils.GetConfigInt("JWT_TTL_MINUTES", 60*24)) * time.Minute
	return newJWTService(utils.GetConfig("JWT_SECRET"), ttl, blacklist)
}

func newJWTService(secretKey string, ttl time.Duration, blacklist TokenBlacklist) *jwtService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    issuer,
		ttl:       ttl,
		blacklist: blacklist,
		now:       time.Now,
	}
}

func (j *jwtService) GenerateTokenUser(userID string) (string, error) {
	return j.sign(userID, purposeLogin, j.ttl)
}

func (j *jwtService) GenerateTokenResetPassword(userID string, duration time.Duration) (string, error) {
	return j.sign(userID, purposeResetPwd, duration)
}

func (j *jwtService) sign(userID, purpose string, ttl time.Duration) (string, error) {
	now := j.now()
	claims := jwtUserClaim{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) validate(token, purpose string) (*jwtUserClaim, error) {
	claims := &jwtUserClaim{}
	t_Token, err := jwt.ParseWithClaims(token, claims, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !t_Token.Valid || claims.Purpose != purpose || claims.UserID == "" {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

func (j *jwtService) GetUserIDByToken(ctx context.Context, token string) (string, error) {
	return j.userID(ctx, token, purposeLogin)
}

func (j *jwtService) GetUserIDByResetToken(ctx context.Context, token string) (string, error) {
	return j.userID(ctx, token, purposeResetPwd)
}

func (j *jwtService) userID(ctx context.Context, token, purpose string) (string, error) {
	claims, err := j.validate(token, purpose)
	if err != nil {
		return "", err
	}

	revoked, err := j.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", domain.ErrTokenRevoked
	}
	return claims.UserID, nil
}

// RevokeToken blacklists the token id until the token would have expired anyway.
func (j *jwtService) RevokeToken(ctx context.Context, token string) error {
	return j.revoke(ctx, token, purposeLogin)
}

// RevokeResetToken makes a reset token single use.
func (j *jwtService) RevokeResetToken(ctx context.Context, token string) error {
	return j.revoke(ctx, token, purposeResetPwd)
}

func (j *jwtService) revoke(ctx context.Context, token, purpose string) error {
	claims, err := j.validate(token, purpose)
	if err != nil {
		return err
	}

	ttl := time.Minute
	if claims.ExpiresAt != nil {
		if remaining := claims.ExpiresAt.Time.Sub(j.now()); remaining > ttl {
			ttl = remaining
		}
	}
	return j.blacklist.Revoke(ctx, claims.ID, ttl)
}
