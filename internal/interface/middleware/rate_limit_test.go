package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRemainingQuotaNeverNegative(t *testing.T) {
	cases := []struct {
		name  string
		max   int
		count int
		want  int
	}{
		{"fresh window", 10, 1, 9},
		{"last allowed request", 10, 10, 0},
		{"over the limit", 10, 11, 0},
		{"far over the limit", 10, 500, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, remainingQuota(tc.max, tc.count))
		})
	}
}

func TestKeyFuncs(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/products", nil)
	c.Set("real_ip", "203.0.113.9")

	assert.Equal(t, "rl:ip:203.0.113.9", KeyByIP()(c))
	assert.Equal(t, "rl:path:/api/products:ip:203.0.113.9", KeyByIPAndPath()(c))
	assert.Equal(t, "rl:user:anon:ip:203.0.113.9", KeyByUserID()(c))

	c.Set(CtxUserIDKey, "user-42")
	assert.Equal(t, "rl:user:user-42", KeyByUserID()(c))
}
