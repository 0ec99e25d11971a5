package user

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/user/dto"
)

type UseCase interface {
	Register(ctx context.Context, input *dto.CredentialsInput) (*model.User, error)
	Login(ctx context.Context, input *dto.CredentialsInput) (*dto.LoginResult, error)
	Me(ctx context.Context, identity auth.Identity) (*model.User, error)

	// CreateAdmin creates an admin account or promotes an existing one and
	// resets its password. Not reachable over HTTP.
	CreateAdmin(ctx context.Context, input *dto.CredentialsInput) (*model.User, error)
}
