package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/user"
	"github.com/fekuna/omnipos-storefront/internal/user/dto"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"go.uber.org/zap"
)

type userUseCase struct {
	repo   user.Repository
	tm     database.TxManager
	hasher auth.PasswordHasher
	tokens auth.TokenMaker
	logger logger.ZapLogger
}

func NewUserUseCase(repo user.Repository, tm database.TxManager, hasher auth.PasswordHasher, tokens auth.TokenMaker, log logger.ZapLogger) user.UseCase {
	return &userUseCase{
		repo:   repo,
		tm:     tm,
		hasher: hasher,
		tokens: tokens,
		logger: log,
	}
}

const (
	maxEmailLength = 120
	// bcrypt only hashes the first 72 bytes and refuses longer input.
	maxPasswordBytes = 72
)

func normalize(input *dto.CredentialsInput) (string, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return "", "", apperror.New(apperror.BadRequest, "email and password are required")
	}
	return email, input.Password, nil
}

// newCredentials normalizes input for an account about to be stored.
func newCredentials(input *dto.CredentialsInput) (string, string, error) {
	email, password, err := normalize(input)
	if err != nil {
		return "", "", err
	}
	if utf8.RuneCountInString(email) > maxEmailLength {
		return "", "", apperror.New(apperror.BadRequest, fmt.Sprintf("email must be at most %d characters", maxEmailLength))
	}
	if len(password) > maxPasswordBytes {
		return "", "", apperror.New(apperror.BadRequest, fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}
	return email, password, nil
}

func (uc *userUseCase) Register(ctx context.Context, input *dto.CredentialsInput) (*model.User, error) {
	email, password, err := newCredentials(input)
	if err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      false,
		CreatedAt:    time.Now().UTC(),
	}

	err = uc.tm.WithTx(ctx, func(tx database.DBTX) error {
		existing, err := uc.repo.FindByEmail(ctx, tx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.New(apperror.Conflict, "user already exists")
		}
		if err := uc.repo.Create(ctx, tx, u); err != nil {
			if database.IsUniqueViolation(err) {
				return apperror.New(apperror.Conflict, "user already exists")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", zap.Int64("user_id", u.ID))
	return u, nil
}

func (uc *userUseCase) Login(ctx context.Context, input *dto.CredentialsInput) (*dto.LoginResult, error) {
	email, password, err := normalize(input)
	if err != nil {
		return nil, err
	}

	u, err := uc.repo.FindByEmail(ctx, uc.tm.Conn(), email)
	if err != nil {
		return nil, err
	}
	if u == nil || !uc.hasher.Verify(password, u.PasswordHash) {
		return nil, apperror.New(apperror.Unauthorized, "invalid email or password")
	}

	token, claims, err := uc.tokens.CreateToken(u.ID, u.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResult{
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAt.Time,
		UserID:      u.ID,
		Email:       u.Email,
		IsAdmin:     u.IsAdmin,
	}, nil
}

func (uc *userUseCase) Me(ctx context.Context, identity auth.Identity) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, uc.tm.Conn(), identity.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.New(apperror.NotFound, "user not found")
	}
	return u, nil
}

func (uc *userUseCase) CreateAdmin(ctx context.Context, input *dto.CredentialsInput) (*model.User, error) {
	email, password, err := newCredentials(input)
	if err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var u *model.User
	err = uc.tm.WithTx(ctx, func(tx database.DBTX) error {
		existing, err := uc.repo.FindByEmail(ctx, tx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.PasswordHash = hash
			existing.IsAdmin = true
			u = existing
			return uc.repo.UpdateCredentials(ctx, tx, existing.ID, hash, true)
		}

		u = &model.User{
			Email:        email,
			PasswordHash: hash,
			IsAdmin:      true,
			CreatedAt:    time.Now().UTC(),
		}
		return uc.repo.Create(ctx, tx, u)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("admin account ready", zap.Int64("user_id", u.ID), zap.String("email", u.Email))
	return u, nil
}
