package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCurrentUserAndRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	// unauthenticated routes see zero values
	assert.Equal(t, uint(0), CurrentUserID(c))
	assert.Equal(t, "", CurrentRole(c))

	c.Set(CtxUserID, uint(42))
	c.Set(CtxRole, "owner")
	assert.Equal(t, uint(42), CurrentUserID(c))
	assert.Equal(t, "owner", CurrentRole(c))
}
