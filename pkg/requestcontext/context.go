// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets these values; services and the audit trail read them. The
// package stays free of net/http so services can import it without pulling in
// HTTP-related code.
//
// Usage in services (read values):
//
//	subject := requestcontext.SubjectID(ctx)
//	requestID := requestcontext.RequestID(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithSubjectID(ctx, subject)
//	ctx = requestcontext.WithRequestID(ctx, requestID)
package requestcontext

import (
	"context"
	"time"
)

// Context key types (unexported for encapsulation).
type (
	subjectIDKey   struct{}
	requestIDKey   struct{}
	clientIPKey    struct{}
	userAgentKey   struct{}
	deviceNameKey  struct{}
	requestTimeKey struct{}
)

// Exported context keys for tests that need raw context.WithValue.
var (
	ContextKeySubjectID   = subjectIDKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyClientIP    = clientIPKey{}
	ContextKeyUserAgent   = userAgentKey{}
	ContextKeyDeviceName  = deviceNameKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// SubjectID retrieves the authenticated subject identity key (the claimant's
// national identity number) from the context. Empty if not authenticated.
func SubjectID(ctx context.Context) string {
	if subject, ok := ctx.Value(ContextKeySubjectID).(string); ok {
		return subject
	}
	return ""
}

// WithSubjectID injects the authenticated subject identity key.
func WithSubjectID(ctx context.Context, subjectID string) context.Context {
	return context.WithValue(ctx, ContextKeySubjectID, subjectID)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// ClientIP retrieves the client IP address from the context.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return ""
}

// UserAgent retrieves the raw User-Agent from the context.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(ContextKeyUserAgent).(string); ok {
		return ua
	}
	return ""
}

// DeviceName retrieves the parsed browser/OS description from the context.
func DeviceName(ctx context.Context) string {
	if name, ok := ctx.Value(ContextKeyDeviceName).(string); ok {
		return name
	}
	return ""
}

// WithClientMetadata injects client IP, raw User-Agent, and the parsed device
// description. Useful for service unit tests that skip the middleware chain.
func WithClientMetadata(ctx context.Context, clientIP, userAgent, deviceName string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyClientIP, clientIP)
	ctx = context.WithValue(ctx, ContextKeyUserAgent, userAgent)
	ctx = context.WithValue(ctx, ContextKeyDeviceName, deviceName)
	return ctx
}

// Now retrieves the request-scoped time from the context, falling back to
// time.Now for non-HTTP callers (workers, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a fixed time, mostly for deterministic tests.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
