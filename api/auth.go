package api

import (
	"fmt"
	"strings"

	"marketmap/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// authMiddleware gates endpoints that cost money to serve (the gpt-backed
// commentary). Tokens are HS256, signed with the shared key from secrets.
// An empty signing key disables the check - local dev convenience.
func (m ApiHandler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.JwtSigningKey == "" {
			logger.Warn("no jwt signing key configured - auth disabled")
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			returnErrorJsonCode(fmt.Errorf("missing bearer token"), c, 401)
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(m.JwtSigningKey), nil
		})
		if err != nil {
			returnErrorJsonCode(fmt.Errorf("failed to parse token: %w", err), c, 401)
			return
		}
		if !token.Valid {
			returnErrorJsonCode(fmt.Errorf("invalid token"), c, 401)
			return
		}

		c.Next()
	}
}
