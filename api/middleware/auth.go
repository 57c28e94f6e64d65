package middleware

import (
	"strings"

	"greencity/api/ctxutil"
	"greencity/api/response"
	"greencity/config"
	"greencity/infrastructure/persistence"
	"greencity/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "Bearer "

// Claims 用户服务签发的访问令牌载荷
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator 校验 HS256 bearer token，本服务不签发令牌
type Authenticator struct {
	secret []byte
	parser *jwt.Parser
}

func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	return &Authenticator{secret: []byte(cfg.JWTSecret), parser: jwt.NewParser(opts...)}
}

// Required 缺少或无效的令牌返回 401
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		if !a.authenticate(c, token) {
			return
		}
		c.Next()
	}
}

// Optional 有令牌时解析当前用户，无令牌时放行
func (a *Authenticator) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok && !a.authenticate(c, token) {
			return
		}
		c.Next()
	}
}

func (a *Authenticator) authenticate(c *gin.Context, token string) bool {
	claims := &Claims{}
	_, err := a.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil || claims.UserID <= 0 {
		abortUnauthorized(c, "invalid bearer token")
		return false
	}

	ctxutil.SetCurrentUser(c, ctxutil.CurrentUser{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	})
	c.Request = c.Request.WithContext(persistence.ContextWithBearerToken(c.Request.Context(), token))
	return true
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, message string) {
	response.HandleAppError(c, errors.Unauthorized(message))
	c.Abort()
}
