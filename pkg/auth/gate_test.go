package auth_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glorpus-work/cachectl/pkg/auth"
)

func TestGate_AllowAddr(t *testing.T) {
	gate := auth.NewGate("secret", []string{"127.0.0.1", "::1", "10.20.0.0/16", "not-an-ip"})

	tests := []struct {
		name   string
		remote string
		want   bool
	}{
		{"loopback v4 with port", "127.0.0.1:51234", true},
		{"loopback v6 with port", "[::1]:51234", true},
		{"bare address", "127.0.0.1", true},
		{"mapped v4", "[::ffff:127.0.0.1]:80", true},
		{"inside prefix", "10.20.3.4:80", true},
		{"outside prefix", "10.21.0.1:80", false},
		{"stranger", "203.0.113.9:443", false},
		{"garbage", "nonsense", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.AllowAddr(tt.remote))
		})
	}
}

func TestGate_EmptyAllowListDeniesEveryone(t *testing.T) {
	gate := auth.NewGate("secret", nil)
	assert.False(t, gate.AllowAddr("127.0.0.1:1"))
}

func TestGate_CheckPassword(t *testing.T) {
	gate := auth.NewGate("secret", nil)
	assert.True(t, gate.CheckPassword("secret"))
	assert.False(t, gate.CheckPassword("Secret"))
	assert.False(t, gate.CheckPassword(""))

	assert.False(t, auth.NewGate("", nil).CheckPassword(""), "an empty configured password never matches")
}

func TestGate_Authorize(t *testing.T) {
	gate := auth.NewGate("secret", []string{"127.0.0.1"})

	newRequest := func(remote, password string) *http.Request {
		form := url.Values{auth.PasswordField: {password}}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = remote
		return req
	}

	assert.NoError(t, gate.Authorize(newRequest("127.0.0.1:1000", "secret")))
	assert.ErrorIs(t, gate.Authorize(newRequest("127.0.0.1:1000", "wrong")), auth.ErrAuthenticationFailed)
	assert.ErrorIs(t, gate.Authorize(newRequest("192.0.2.1:1000", "secret")), auth.ErrAddressNotAllowed)
}
