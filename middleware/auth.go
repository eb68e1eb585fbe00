package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/work-spot/api-go/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		claims, ok := parseBearerToken(authHeader)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), claims)

		c.Next()
	}
}

// OptionalAuthMiddleware parses a bearer token when one is supplied but lets
// anonymous requests through. A token that is present and invalid is still
// rejected.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		claims, ok := parseBearerToken(authHeader)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), claims)

		c.Next()
	}
}

// RequireScope gates an endpoint on a capability granted in the token. Runs
// after AuthMiddleware, before the handler validates anything else.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := utils.GetUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
			c.Abort()
			return
		}

		if !user.HasScope(scope) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Missing required scope: " + scope})
			c.Abort()
			return
		}

		c.Next()
	}
}

func parseBearerToken(authHeader string) (*utils.UserClaims, bool) {
	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 {
		return nil, false
	}

	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(bearerToken[1], claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !parsedToken.Valid {
		return nil, false
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, false
	}

	isAdmin, _ := claims["is_admin"].(bool)

	var scopes []string
	if rawScopes, ok := claims["scopes"].([]interface{}); ok {
		for _, s := range rawScopes {
			if scope, ok := s.(string); ok {
				scopes = append(scopes, scope)
			}
		}
	}

	return &utils.UserClaims{
		UserID:  uint(userID),
		IsAdmin: isAdmin,
		Scopes:  scopes,
	}, true
}
