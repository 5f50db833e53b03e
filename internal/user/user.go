package users

import "context"

type ContextKey string

const UserKey ContextKey = "user"

// Organizer is the signed in account as reported by GET /auth/me.
type Organizer struct {
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
}

func WithOrganizer(ctx context.Context, o *Organizer) context.Context {
	return context.WithValue(ctx, UserKey, o)
}

func FromContext(ctx context.Context) *Organizer {
	o, _ := ctx.Value(UserKey).(*Organizer)
	return o
}
