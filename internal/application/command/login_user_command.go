package command

import (
	"time"

	"nutritrack/internal/application/common"
)

// LoginUserCommand carries the submitted login form fields as opaque strings.
type LoginUserCommand struct {
	Login    string `json:"login" form:"uname"`
	Password string `json:"password" form:"psw"`
}

type LoginUserCommandResult struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      *common.UserResult `json:"user"`
}
