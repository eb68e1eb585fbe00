package utils

import (
	"github.com/gin-gonic/gin"
)

// ScopeOfficeCreate is required to publish a new office listing.
const ScopeOfficeCreate = "office.create"

type UserClaims struct {
	UserID  uint     `json:"user_id"`
	IsAdmin bool     `json:"is_admin"`
	Scopes  []string `json:"scopes"`
}

func (uc *UserClaims) HasScope(scope string) bool {
	for _, s := range uc.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

type contextKey string

const UserContextKey contextKey = "user"

func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}
