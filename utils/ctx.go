package utils

import "github.com/gin-gonic/gin"

// Context keys the auth middlewares populate from the verified token. Both
// middlewares parse into Claims, so the stored values are always typed.
const (
	CtxUserID = "authUserId"
	CtxRole   = "authRole"
)

// CurrentUserID is the authenticated user's id; 0 on unauthenticated routes.
func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get(CtxUserID)
	id, _ := v.(uint)
	return id
}

// CurrentRole is the authenticated user's role; "" on unauthenticated routes.
func CurrentRole(c *gin.Context) string {
	v, _ := c.Get(CtxRole)
	role, _ := v.(string)
	return role
}
