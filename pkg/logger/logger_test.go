package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/meetup/pkg/environment"
	"github.com/dmitrymomot/meetup/pkg/logger"
	"github.com/dmitrymomot/meetup/pkg/requestid"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	log.Debug("hidden")
	log.Info("visible", slog.String("k", "v"))

	recs := decodeLines(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "visible", recs[0]["msg"])
	assert.Equal(t, "v", recs[0]["k"])
}

func TestNew_Environment(t *testing.T) {
	t.Run("production logs json", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithEnvironment(environment.Production, "meetup"), logger.WithOutput(&buf))
		log.Debug("hidden")
		log.Info("hello")

		recs := decodeLines(t, &buf)
		require.Len(t, recs, 1)
		assert.Equal(t, "meetup", recs[0]["service"])
		assert.Equal(t, "production", recs[0]["env"])
	})

	t.Run("development logs text at debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithEnvironment(environment.Development, ""), logger.WithOutput(&buf))
		log.Debug("details")

		assert.Contains(t, buf.String(), "msg=details")
		assert.Contains(t, buf.String(), "env=development")
	})
}

func TestWithFormat_PanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { logger.New(logger.WithFormat("yaml")) })
	assert.NotPanics(t, func() { logger.New(logger.WithFormat(logger.FormatText)) })
}

func TestContextExtractors(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextExtractors(requestid.LoggerExtractor(), nil),
	)

	ctx := requestid.WithContext(context.Background(), "req-42")
	log.With(logger.Component("test")).InfoContext(ctx, "with id")
	log.InfoContext(context.Background(), "without id")

	recs := decodeLines(t, &buf)
	require.Len(t, recs, 2)
	assert.Equal(t, "req-42", recs[0]["request_id"])
	assert.Equal(t, "test", recs[0]["component"])
	assert.NotContains(t, recs[1], "request_id")
}

func TestAttrs(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)
	assert.Equal(t, slog.Attr{}, logger.UserID(nil))
	assert.Equal(t, "user_id", logger.UserID("u1").Key)
	assert.Equal(t, slog.Attr{}, logger.RequestID(nil))

	g := logger.Group("http", logger.Method("GET"), logger.Status(200))
	assert.Equal(t, "http", g.Key)
	assert.Len(t, g.Value.Group(), 2)
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{"ok", http.StatusOK, "INFO"},
		{"client error", http.StatusNotFound, "WARN"},
		{"server error", http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.New(logger.WithOutput(&buf))

			h := logger.Middleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/event", nil))

			recs := decodeLines(t, &buf)
			require.Len(t, recs, 1)
			assert.Equal(t, tt.level, recs[0]["level"])
			assert.Equal(t, "POST", recs[0]["method"])
			assert.Equal(t, "/api/event", recs[0]["path"])
			assert.EqualValues(t, tt.status, recs[0]["status"])
			assert.EqualValues(t, 4, recs[0]["bytes"])
		})
	}
}

func TestMiddleware_ImplicitOK(t *testing.T) {
	var buf bytes.Buffer
	h := logger.Middleware(logger.New(logger.WithOutput(&buf)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	recs := decodeLines(t, &buf)
	require.Len(t, recs, 1)
	assert.EqualValues(t, 200, recs[0]["status"])
}
