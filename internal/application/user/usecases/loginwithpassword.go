package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/sentra-pos/sentra/internal/application/user/dto"
	"github.com/sentra-pos/sentra/internal/domain/user"
	"github.com/sentra-pos/sentra/internal/shared/authorization"
	"github.com/sentra-pos/sentra/internal/shared/logger"
	"github.com/sentra-pos/sentra/internal/shared/utils"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	User        *dto.UserDTO `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, tenantID uint, role authorization.UserRole) (token string, expiresIn int64, err error)
}

type LoginWithPasswordUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewLoginWithPasswordUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *LoginWithPasswordUseCase {
	return &LoginWithPasswordUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *LoginWithPasswordUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	u, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if u == nil || !u.IsActive() {
		return nil, ErrInvalidCredentials
	}

	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.logger.Warnw("failed login attempt", "email", utils.MaskEmail(cmd.Email))
		return nil, ErrInvalidCredentials
	}

	token, expiresIn, err := uc.tokens.Issue(u.ID(), u.TenantID(), u.Role())
	if err != nil {
		uc.logger.Errorw("failed to issue token", "error", err, "user_id", u.ID())
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	uc.logger.Infow("user logged in", "user_id", u.ID(), "tenant_id", u.TenantID())
	return &LoginResult{
		User:        dto.ToDTO(u),
		AccessToken: token,
		ExpiresIn:   expiresIn,
	}, nil
}
