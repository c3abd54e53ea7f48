package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/appointment-scheduler/internal/config"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
)

const ContextActor = "actor"

// AuthMiddleware verifies the bearer token and stores the caller as a
// domain.Actor. Token issuance lives outside this service.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		actor, ok := actorFromClaims(claims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		c.Set(ContextActor, actor)
		c.Next()
	}
}

func actorFromClaims(claims jwt.MapClaims) (domain.Actor, bool) {
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return domain.Actor{}, false
	}
	role, _ := claims["role"].(string)
	businessID, _ := claims["businessId"].(string)

	actor := domain.Actor{ID: sub, Role: domain.Role(role), BusinessID: businessID}
	if !actor.Role.Valid() {
		return domain.Actor{}, false
	}
	if actor.Role != domain.RoleCustomer && businessID == "" {
		return domain.Actor{}, false
	}
	return actor, true
}

// ActorFrom returns the actor stored by AuthMiddleware.
func ActorFrom(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}
