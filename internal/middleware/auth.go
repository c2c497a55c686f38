package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ContextActor = "actor"

// ActorMiddleware resolves who is acting from an optional HS256 bearer
// token. It never rejects a request: without a secret, a token or a valid
// signature the actor is simply left unset.
func ActorMiddleware(secret string, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if secret == "" || authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			log.Warn("ignoring invalid bearer token",
				slog.String("request_id", RequestID(c)),
				slog.Any("error", err),
			)
			c.Next()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if actor := actorFromClaims(claims); actor != "" {
				c.Set(ContextActor, actor)
			}
		}

		c.Next()
	}
}

func actorFromClaims(claims jwt.MapClaims) string {
	if name, ok := claims["name"].(string); ok && strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	if sub, err := claims.GetSubject(); err == nil {
		return sub
	}
	return ""
}

// Actor returns the token actor, or "" when the request is anonymous.
func Actor(c *gin.Context) string {
	return c.GetString(ContextActor)
}
