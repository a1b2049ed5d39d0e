package jwtmanager

import (
	"context"
	"errors"
	"fmt"
	"homevisit-service/internal/app/config"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// JWTManager signs and verifies identity assertions with HS256.
type JWTManager struct {
	log    *zap.Logger
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type identityClaims struct {
	Role         string `json:"role"`
	Email        string `json:"email"`
	TokenVersion int    `json:"ver"`
	jwt.RegisteredClaims
}

type CreateTokenOutput struct {
	Token     string
	ExpiresAt time.Time
}

func NewJWTManager(cfg *config.InternalConfig, log *zap.Logger) (*JWTManager, error) {
	secret := strings.TrimSpace(cfg.JWT.Secret)
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	ttl := time.Duration(cfg.JWT.ExpTimeInHour) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTManager{
		log:    log,
		secret: []byte(secret),
		issuer: cfg.JWT.Issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// CreateToken signs the claims of an identity. The token version is carried
// so that a later claim change invalidates every token issued before it.
func (j *JWTManager) CreateToken(ctx context.Context, in *models.IdentityClaims) (*CreateTokenOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	j.log.Info("JWTManager.CreateToken called", zap.String(constvars.LoggingRequestIDKey, requestID))

	if in == nil || strings.TrimSpace(in.SubjectID) == "" {
		return nil, fmt.Errorf("subject is required")
	}

	now := j.now().UTC()
	expiresAt := now.Add(j.ttl)
	claims := identityClaims{
		Role:         in.Role,
		Email:        in.Email,
		TokenVersion: in.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   in.SubjectID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return nil, err
	}
	return &CreateTokenOutput{Token: signed, ExpiresAt: expiresAt}, nil
}

// VerifyToken checks signature, algorithm, issuer and expiry.
func (j *JWTManager) VerifyToken(ctx context.Context, token string) (*models.IdentityClaims, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	j.log.Info("JWTManager.VerifyToken called", zap.String(constvars.LoggingRequestIDKey, requestID))

	if strings.TrimSpace(token) == "" {
		return nil, errors.New("token is required")
	}

	claims := &identityClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("token is not valid")
	}
	if j.issuer != "" && !claims.VerifyIssuer(j.issuer, true) {
		return nil, fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}

	return &models.IdentityClaims{
		SubjectID:    claims.Subject,
		Role:         claims.Role,
		Email:        claims.Email,
		TokenVersion: claims.TokenVersion,
	}, nil
}
