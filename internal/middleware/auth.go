package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-service/internal/response"
)

// ContextKeySubject is the Gin context key for the authenticated caller.
const ContextKeySubject = "subject"

// Authenticate identifies the caller from an optional HS256 bearer token.
//
// It never rejects a request: anonymous callers, an unset secret and invalid
// tokens all pass through without a subject. Routes that need a caller must
// check ContextKeySubject themselves.
func Authenticate(secret string, log zerolog.Logger) gin.HandlerFunc {
	key := []byte(secret)
	log = log.With().Str("component", "auth").Logger()

	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || len(key) == 0 {
			c.Next()
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			log.Debug().
				Err(err).
				Str("request_id", response.RequestID(c)).
				Msg("Ignoring invalid bearer token")
			c.Next()
			return
		}

		c.Set(ContextKeySubject, claims.Subject)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
