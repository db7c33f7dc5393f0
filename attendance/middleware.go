package attendance

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// OperatorMiddleware returns a Gin middleware that validates operator Bearer
// tokens and sets operatorID, username, and role in the context.
func OperatorMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			return
		}

		claims, err := ValidateAccessToken(raw, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("operatorID", claims.OperatorID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// IdentityMiddleware returns a Gin middleware that validates identity Bearer
// tokens for the given actor kind and sets subjectID in the context.
func IdentityMiddleware(secret string, kind ActorKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			return
		}

		claims, err := ValidateIdentityToken(raw, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired identity token"})
			return
		}
		if claims.Kind != kind {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "identity token is for a different actor kind"})
			return
		}

		c.Set("subjectID", claims.SubjectID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
		return "", false
	}
	return parts[1], true
}
