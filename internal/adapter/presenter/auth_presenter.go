package presenter

import (
	"time"

	authDTO "github.com/johnquangdev/minutemind/internal/adapter/dto/auth"
	"github.com/johnquangdev/minutemind/internal/usecase/auth"
)

// ToLoginResponse converts a login result to LoginResponse DTO
func ToLoginResponse(r *auth.LoginResult) *authDTO.LoginResponse {
	if r == nil {
		return nil
	}
	return &authDTO.LoginResponse{
		AccessToken: r.AccessToken,
		TokenType:   r.TokenType,
		ExpiresIn:   int(time.Until(r.ExpiresAt).Seconds()),
		ExpiresAt:   r.ExpiresAt,
		Username:    r.Username,
	}
}
