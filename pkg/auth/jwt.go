package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/countryclub/pkg/config"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims JWT声明
type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager JWT管理器
type JWTManager struct {
	secret   []byte
	issuer   string
	expireIn time.Duration
	now      func() time.Time
}

// NewJWTManager 创建JWT管理器
func NewJWTManager(cfg *config.JWTConfig) *JWTManager {
	return &JWTManager{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		expireIn: time.Duration(cfg.Expire) * time.Second,
		now:      time.Now,
	}
}

// GenerateToken 生成Token，每个Token带唯一 jti 用于注销
func (m *JWTManager) GenerateToken(userID int64, email, role string) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expireIn)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// ParseToken 解析Token
func (m *JWTManager) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// TokenInfo Token信息
type TokenInfo struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"`
}

// CreateTokenInfo 创建Token信息
func (m *JWTManager) CreateTokenInfo(userID int64, email, role string) (*TokenInfo, error) {
	token, _, err := m.GenerateToken(userID, email, role)
	if err != nil {
		return nil, err
	}
	return &TokenInfo{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(m.expireIn.Seconds()),
	}, nil
}
