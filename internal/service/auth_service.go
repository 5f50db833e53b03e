package service

import (
	"context"
	"errors"

	"github.com/AdamBeresnev/poule-board/internal/apiclient"
	users "github.com/AdamBeresnev/poule-board/internal/user"
)

var ErrInactiveAccount = errors.New("account is disabled")

type AuthService struct {
	api API
}

func NewAuthService(api API) *AuthService {
	return &AuthService{api: api}
}

// Login exchanges credentials for a token and confirms the account behind it.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *users.Organizer, error) {
	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	me, err := s.api.Me(apiclient.WithToken(ctx, token))
	if err != nil {
		return "", nil, err
	}
	if !me.IsActive {
		return "", nil, ErrInactiveAccount
	}
	return token, me, nil
}
