package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lueur-studio/core/internal/pkg/jwt"
	"github.com/lueur-studio/core/internal/pkg/response"
)

const ContextKeyUserID = "user_id"

// AdminChecker is the external identity boundary: given a caller id,
// is that caller an admin. The core never authenticates beyond this.
type AdminChecker interface {
	IsAdmin(callerID string) bool
}

// AdminList answers the admin predicate from an injected allowlist.
// Injected rather than a package-level map so it can be swapped for a
// real identity service without touching call sites.
type AdminList struct {
	ids map[string]struct{}
}

func NewAdminList(ids []string) *AdminList {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = struct{}{}
		}
	}
	return &AdminList{ids: set}
}

func (a *AdminList) IsAdmin(callerID string) bool {
	_, ok := a.ids[callerID]
	return ok
}

// AdminOnly gates destructive operations: a valid token whose subject
// passes the admin predicate.
func AdminOnly(admins AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwt.Parse(extractToken(c))
		if err != nil || claims.UserID == "" {
			response.Unauthorized(c)
			return
		}
		if !admins.IsAdmin(claims.UserID) {
			response.Forbidden(c)
			return
		}
		c.Set(ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// CurrentUserID extracts the authenticated caller id from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated reports whether the request carries a valid token.
func IsAuthenticated(c *gin.Context) bool {
	_, err := jwt.Parse(extractToken(c))
	return err == nil
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return strings.TrimSpace(c.Query("token"))
}
