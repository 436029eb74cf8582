package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crossverify/pkg/requestcontext"
)

type stubValidator struct {
	subjectID string
	err       error
}

func (v stubValidator) ValidateToken(string) (string, error) {
	return v.subjectID, v.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequireAuth(t *testing.T) {
	t.Run("valid token injects subject", func(t *testing.T) {
		var gotSubject string
		handler := RequireAuth(stubValidator{subjectID: "AAD-1"}, discardLogger())(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSubject = requestcontext.SubjectID(r.Context())
			}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "AAD-1", gotSubject)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		handler := RequireAuth(stubValidator{subjectID: "AAD-1"}, discardLogger())(
			http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatal("handler must not run")
			}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong scheme rejected", func(t *testing.T) {
		handler := RequireAuth(stubValidator{subjectID: "AAD-1"}, discardLogger())(
			http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatal("handler must not run")
			}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		handler := RequireAuth(stubValidator{err: errors.New("expired")}, discardLogger())(
			http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatal("handler must not run")
			}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequestID(t *testing.T) {
	t.Run("honors inbound header", func(t *testing.T) {
		var got string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = requestcontext.RequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", "req-from-caller")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "req-from-caller", got)
		assert.Equal(t, "req-from-caller", rec.Header().Get("X-Request-Id"))
	})

	t.Run("generates one when absent", func(t *testing.T) {
		var got string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = requestcontext.RequestID(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(got)
		require.NoError(t, err)
		assert.Equal(t, got, rec.Header().Get("X-Request-Id"))
	})
}

func TestClientMetadata(t *testing.T) {
	t.Run("forwarded-for wins over socket address", func(t *testing.T) {
		var gotIP string
		handler := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotIP = requestcontext.ClientIP(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "203.0.113.7", gotIP)
	})

	t.Run("falls back to remote address", func(t *testing.T) {
		var gotIP string
		handler := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotIP = requestcontext.ClientIP(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.4:51234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "192.0.2.4", gotIP)
	})

	t.Run("parses a browser user agent", func(t *testing.T) {
		var gotDevice, gotUA string
		handler := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotDevice = requestcontext.DeviceName(r.Context())
			gotUA = requestcontext.UserAgent(r.Context())
		}))

		const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("User-Agent", chromeUA)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, chromeUA, gotUA)
		assert.Contains(t, gotDevice, "Chrome")
		assert.Contains(t, gotDevice, "on")
	})

	t.Run("empty user agent leaves device blank", func(t *testing.T) {
		var gotDevice string
		handler := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotDevice = requestcontext.DeviceName(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Empty(t, gotDevice)
	})
}
