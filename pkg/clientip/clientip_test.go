package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/meetup/pkg/clientip"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		trusted []string
		want    string
	}{
		{"remote addr", nil, "192.0.2.10:5555", clientip.DefaultHeaders, "192.0.2.10"},
		{"remote addr without port", nil, "192.0.2.10", clientip.DefaultHeaders, "192.0.2.10"},
		{"forwarded first valid", map[string]string{"X-Forwarded-For": "garbage, 203.0.113.7, 10.0.0.1"}, "10.0.0.2:80", clientip.DefaultHeaders, "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.4"}, "10.0.0.2:80", clientip.DefaultHeaders, "198.51.100.4"},
		{"header order", map[string]string{"X-Real-IP": "198.51.100.4", "X-Forwarded-For": "203.0.113.7"}, "10.0.0.2:80", clientip.DefaultHeaders, "203.0.113.7"},
		{"untrusted header ignored", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "10.0.0.2:80", nil, "10.0.0.2"},
		{"ipv6", nil, "[2001:db8::1]:443", nil, "2001:db8::1"},
		{"ipv4 mapped", map[string]string{"X-Real-IP": "::ffff:192.0.2.1"}, "", clientip.DefaultHeaders, "192.0.2.1"},
		{"nothing valid", map[string]string{"X-Real-IP": "nope"}, "pipe", clientip.DefaultHeaders, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.FromRequest(r, tt.trusted...))
		})
	}
}

func TestMiddleware(t *testing.T) {
	var got string
	h := clientip.Middleware(clientip.DefaultHeaders...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "203.0.113.9", got)
}

func TestLoggerExtractor(t *testing.T) {
	extract := clientip.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(clientip.WithContext(context.Background(), "192.0.2.1"))
	require.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)
	assert.Equal(t, "192.0.2.1", attr.Value.String())
}
