// Package actorctx carries the authenticated user id on a context.Context
// so code below the HTTP layer can read it without gin.
package actorctx

import "context"

type key struct{}

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, key{}, userID)
}

func UserIDFrom(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(key{}).(int64)

	return v, ok && v > 0
}
