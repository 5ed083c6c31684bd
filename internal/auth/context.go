package auth

import (
	"context"

	"github.com/coelhor/feira/internal/model"
)

type contextKey struct{}

// AuthContext carries the signed-in member and session token through a
// request.
type AuthContext struct {
	Member model.Member
	Token  string
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

// CurrentMember returns the signed-in member, or the zero Member when the
// request is unauthenticated.
func CurrentMember(ctx context.Context) model.Member {
	ac, ok := FromContext(ctx)
	if !ok {
		return model.Member{}
	}
	return ac.Member
}

// SessionToken returns the request's session token, or "".
func SessionToken(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.Token
}
