package httpx

import "context"

type ctxKey string

const (
	ctxKeySubject ctxKey = "subject"
	ctxKeyToken   ctxKey = "token"
	ctxKeyStack   ctxKey = "stack"
)

// WithSubject stores the authenticated subject id.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, ctxKeySubject, subject)
}

// SubjectFromContext returns the subject stored by Authenticate with
// signature verification enabled.
func SubjectFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeySubject).(string)
	return v, ok && v != ""
}

// WithToken stores the raw bearer credential.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyToken, token)
}

// TokenFromContext returns the unverified bearer credential stored by
// Authenticate with signature verification disabled.
func TokenFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyToken).(string)
	return v, ok && v != ""
}

func withStack(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKeyStack, true)
}

func stackEnabled(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyStack).(bool)
	return v
}
