package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/manish-terminal/elastomech/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// User 静态账号,厂内两个固定角色
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

var staticUsers = []User{
	{Username: "admin", Password: "admin123", Name: "Admin", Role: "admin"},
	{Username: "worker", Password: "worker123", Name: "Worker", Role: "worker"},
}

type AuthService struct {
	rdb    *redis.Client
	cfg    *config.Config
	logger *zap.Logger
}

func NewAuthService(rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{rdb: rdb, cfg: cfg, logger: logger}
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type SignInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type SignInResponse struct {
	User  User       `json:"user"`
	Token *TokenPair `json:"token"`
}

// SignIn 静态账号登录
func (s *AuthService) SignIn(req SignInRequest) (*SignInResponse, error) {
	for _, u := range staticUsers {
		if u.Username == req.Username && u.Password == req.Password && u.Role == req.Role {
			pair, err := s.generateTokenPair(&u)
			if err != nil {
				return nil, err
			}
			return &SignInResponse{User: u, Token: pair}, nil
		}
	}
	return nil, fmt.Errorf("%w: 用户名或密码错误", ErrValidation)
}

// generateTokenPair 生成Token对
func (s *AuthService) generateTokenPair(user *User) (*TokenPair, error) {
	now := time.Now()
	jti := uuid.New().String()

	// Access Token
	accessClaims := jwt.MapClaims{
		"sub":  user.Username,
		"uid":  user.Username,
		"name": user.Name,
		"role": user.Role,
		"iss":  s.cfg.JWT.Issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.JWT.AccessTokenExpire).Unix(),
		"jti":  jti,
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	// Refresh Token
	refreshJti := uuid.New().String()
	refreshClaims := jwt.MapClaims{
		"sub":  user.Username,
		"type": "refresh",
		"iss":  s.cfg.JWT.Issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.JWT.RefreshTokenExpire).Unix(),
		"jti":  refreshJti,
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	// 存储Refresh Token到Redis,未配置Redis时跳过(刷新不可用)
	if s.rdb != nil {
		ctx := context.Background()
		s.rdb.Set(ctx, "token:refresh:"+refreshJti, user.Username, s.cfg.JWT.RefreshTokenExpire)
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.cfg.JWT.AccessTokenExpire.Seconds()),
	}, nil
}

// RefreshToken 刷新Token
func (s *AuthService) RefreshToken(ctx context.Context, refreshTokenString string) (*TokenPair, error) {
	if s.rdb == nil {
		return nil, fmt.Errorf("refresh token unavailable")
	}

	token, err := jwt.Parse(refreshTokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	// 检查Token类型
	if claims["type"] != "refresh" {
		return nil, fmt.Errorf("invalid token type")
	}

	// 检查Redis中是否存在
	jti, _ := claims["jti"].(string)
	username, err := s.rdb.Get(ctx, "token:refresh:"+jti).Result()
	if err != nil {
		return nil, fmt.Errorf("refresh token expired or invalid")
	}

	user := findUser(username)
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	// 删除旧的Refresh Token
	s.rdb.Del(ctx, "token:refresh:"+jti)

	return s.generateTokenPair(user)
}

func findUser(username string) *User {
	for i := range staticUsers {
		if staticUsers[i].Username == username {
			return &staticUsers[i]
		}
	}
	return nil
}
