package entity

import (
	"context"
)

type ctxKey int

const (
	ctxKeyUser ctxKey = iota
	ctxKeyJWT
)

func CtxWithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, user)
}

// UserFromCtx returns the user from context or ErrUnauthenticated if absent.
func UserFromCtx(ctx context.Context) (User, error) {
	user, ok := ctx.Value(ctxKeyUser).(User)
	if !ok {
		return user, ErrUnauthenticated
	}

	return user, nil
}

func CtxWithJWT(ctx context.Context, jwt string) context.Context {
	return context.WithValue(ctx, ctxKeyJWT, jwt)
}

// JWTFromCtx returns the JWT from context or an empty string if absent.
func JWTFromCtx(ctx context.Context) string {
	jwt, ok := ctx.Value(ctxKeyJWT).(string)
	if !ok {
		return ""
	}

	return jwt
}
