package auth

import "context"

type contextKey struct{}

// AuthContext identifies the tenant behind a request. There is no implicit
// current tenant anywhere else; everything downstream takes AdminID from here.
type AuthContext struct {
	AdminID   int64
	SessionID int64
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

func AdminID(ctx context.Context) int64 {
	ac, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return ac.AdminID
}
