package polaris

import (
	"context"
	"net/http"

	"github.com/polarisapp/client-go/internal/transport"
)

// AuthService wraps the authentication endpoints. Methods return the wire
// envelope unmodified; branch on Success for business outcomes.
type AuthService struct {
	client *Client
}

// SignUpParams are the fields for account creation.
type SignUpParams struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

// SignInParams are the credentials for session creation.
type SignInParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is an issued token pair.
type Session struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	TokenType    string `json:"tokenType,omitempty"`
}

// Ack is the payload of acknowledgement-only responses.
type Ack struct {
	Message string `json:"message,omitempty"`
}

// SignUp creates a new account.
func (s *AuthService) SignUp(ctx context.Context, params SignUpParams) (*Envelope[Session], error) {
	return transport.Call[Session](ctx, s.client.transport, http.MethodPost, "/v1/auth/signup", params, nil)
}

// SignIn creates a session. On success the issued access token is stored in
// the client's credential cell and used by subsequent requests.
func (s *AuthService) SignIn(ctx context.Context, params SignInParams) (*Envelope[Session], error) {
	env, err := transport.Call[Session](ctx, s.client.transport, http.MethodPost, "/v1/auth/signin", params, nil)
	if err != nil {
		return nil, err
	}
	if env.Success && env.HasData() {
		s.client.SetAccessToken(env.Data.AccessToken)
	}
	return env, nil
}

// RefreshToken exchanges a refresh token for a new session. On success the
// credential cell is updated.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*Envelope[Session], error) {
	body := map[string]string{"refreshToken": refreshToken}
	env, err := transport.Call[Session](ctx, s.client.transport, http.MethodPost, "/v1/auth/refresh", body, nil)
	if err != nil {
		return nil, err
	}
	if env.Success && env.HasData() {
		s.client.SetAccessToken(env.Data.AccessToken)
	}
	return env, nil
}

// SignOut invalidates the current session and clears the credential cell.
func (s *AuthService) SignOut(ctx context.Context) (*Envelope[Ack], error) {
	env, err := transport.Call[Ack](ctx, s.client.transport, http.MethodPost, "/v1/auth/signout", nil, nil)
	if err != nil {
		return nil, err
	}
	if env.Success {
		s.client.ClearAccessToken()
	}
	return env, nil
}

// VerifyEmail confirms an email address with the token from the
// verification mail.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*Envelope[Ack], error) {
	body := map[string]string{"token": token}
	return transport.Call[Ack](ctx, s.client.transport, http.MethodPost, "/v1/auth/verify-email", body, nil)
}

// RequestPasswordReset starts the password reset flow for an email address.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*Envelope[Ack], error) {
	body := map[string]string{"email": email}
	return transport.Call[Ack](ctx, s.client.transport, http.MethodPost, "/v1/auth/password-reset", body, nil)
}

// ResetPassword completes the password reset flow.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (*Envelope[Ack], error) {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return transport.Call[Ack](ctx, s.client.transport, http.MethodPost, "/v1/auth/password-reset/confirm", body, nil)
}

// ChangePassword replaces the password of the authenticated account.
func (s *AuthService) ChangePassword(ctx context.Context, currentPassword, newPassword string) (*Envelope[Ack], error) {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return transport.Call[Ack](ctx, s.client.transport, http.MethodPost, "/v1/auth/password", body, nil)
}
