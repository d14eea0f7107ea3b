package session

import (
	"bufio"
	"errors"
	"net"
	"net/http"
)

// ErrorFunc renders a pipeline failure. Middlewares hand their errors to it
// instead of writing responses themselves.
type ErrorFunc func(w http.ResponseWriter, r *http.Request, err error)

// Middleware loads the session before the next handler runs and commits it
// right before the response headers go out. A load failure stops the
// request; a commit failure replaces whatever the handler tried to send.
func (m *Manager) Middleware(onError ErrorFunc) func(http.Handler) http.Handler {
	if onError == nil {
		onError = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := m.Load(r.Context(), r)
			if err != nil {
				onError(w, r, err)
				return
			}

			r = r.WithContext(WithSession(r.Context(), sess))
			cw := &commitWriter{
				ResponseWriter: w,
				req:            r,
				onError:        onError,
				commit: func() error {
					return m.Save(r.Context(), w, sess)
				},
			}

			next.ServeHTTP(cw, r)

			// Handlers that never wrote still get their session saved.
			cw.ensureCommitted()
		})
	}
}

// commitWriter commits the session exactly once, before the first byte of
// the response leaves the process.
type commitWriter struct {
	http.ResponseWriter
	req       *http.Request
	commit    func() error
	onError   ErrorFunc
	committed bool
	failed    bool
}

func (cw *commitWriter) ensureCommitted() bool {
	if cw.committed {
		return !cw.failed
	}
	cw.committed = true
	if err := cw.commit(); err != nil {
		cw.failed = true
		clearEntityHeaders(cw.ResponseWriter.Header())
		cw.onError(cw.ResponseWriter, cw.req, err)
		return false
	}
	return true
}

// entityHeaders describe the handler's body, which a failed commit drops.
var entityHeaders = []string{
	"Content-Length",
	"Content-Encoding",
	"Content-Range",
	"Content-Disposition",
	"Accept-Ranges",
	"Last-Modified",
	"ETag",
}

func clearEntityHeaders(h http.Header) {
	for _, k := range entityHeaders {
		h.Del(k)
	}
}

func (cw *commitWriter) WriteHeader(code int) {
	if !cw.ensureCommitted() {
		return
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *commitWriter) Write(p []byte) (int, error) {
	if !cw.ensureCommitted() {
		// The error response is already written; drop the original body.
		return len(p), nil
	}
	return cw.ResponseWriter.Write(p)
}

func (cw *commitWriter) Flush() {
	if !cw.ensureCommitted() {
		return
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *commitWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := cw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("session: underlying ResponseWriter does not support hijacking")
	}
	return h.Hijack()
}

// Unwrap lets http.ResponseController reach the original writer.
func (cw *commitWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}
