package utils

import (
	"context"
)

type contextKey string

const (
	// ActorKey carries the opaque identity of the caller (guest or staff).
	// Sessions are validated upstream; this service only passes the ID through.
	ActorKey contextKey = "actor_id"
)

func GetActorFromContext(ctx context.Context) (string, bool) {
	actorVal := ctx.Value(ActorKey)
	if actorVal == nil {
		return "", false
	}

	actor, ok := actorVal.(string)
	if !ok || actor == "" {
		return "", false
	}

	return actor, true
}

func SetActorContext(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}
