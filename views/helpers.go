package views

import (
	"context"

	"github.com/AdamBeresnev/poule-board/internal/middleware"
	users "github.com/AdamBeresnev/poule-board/internal/user"
)

func GetUser(ctx context.Context) *users.Organizer {
	return middleware.GetAuthenticatedUser(ctx)
}

func isOrganizer(ctx context.Context) bool {
	return GetUser(ctx) != nil
}
