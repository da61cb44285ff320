package apiclient

import "context"

type tokenCtxKey struct{}

// WithToken returns a context carrying a bearer token for outgoing requests.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

// TokenFromContext extracts the bearer token set by WithToken, or "".
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenCtxKey{}).(string)
	return token
}

// ContextTokenSource reads the token from the request context. This keeps
// authentication explicit per call instead of ambient global state: public
// requests carry no token, admin requests carry the session's.
func ContextTokenSource() TokenSource {
	return TokenFromContext
}
