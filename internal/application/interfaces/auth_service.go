package interfaces

import (
	"context"

	"nutritrack/internal/application/command"
)

type AuthService interface {
	// VerifyCredentials reports whether login/password match a stored user.
	// A missing user is a non-match, not an error; err is set only when
	// storage could not be consulted.
	VerifyCredentials(ctx context.Context, login, password string) (bool, error)
	LoginUser(ctx context.Context, loginCommand *command.LoginUserCommand) (*command.LoginUserCommandResult, error)
}
