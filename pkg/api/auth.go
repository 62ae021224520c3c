package api

import (
	"net/http"
	"net/url"

	"github.com/investorion/cli/pkg/client"
	"github.com/investorion/cli/pkg/credentials"
	"github.com/investorion/cli/pkg/logger"
)

// Token exchanges email/password credentials for a token pair via the
// form-encoded grant endpoint. The pair is NOT persisted here; session
// handling decides when to store it.
func Token(email, password string) (*credentials.TokenPair, error) {
	logger.Debug("Requesting token grant", "email", email)

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var pair credentials.TokenPair
	err := client.Default().DoJSON(http.MethodPost, "/auth/token", &client.Options{
		Form:   form,
		NoAuth: true,
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Register creates a new account. A successful registration does not imply a
// session; callers log in separately.
func Register(email, password, fullName string) error {
	logger.Debug("Registering account", "email", email)

	return client.Default().DoJSON(http.MethodPost, "/auth/register", &client.Options{
		Body:   RegisterRequest{Email: email, Password: password, FullName: fullName},
		NoAuth: true,
	}, nil)
}

// RequestPasswordReset asks the backend for a reset token. Backends that
// deliver the token by email return an empty token, which is not an error.
func RequestPasswordReset(email string) (string, error) {
	logger.Debug("Requesting password reset", "email", email)

	var resp struct {
		ResetToken string `json:"reset_token"`
	}
	err := client.Default().DoJSON(http.MethodPost, "/auth/request-password-reset", &client.Options{
		Body:   map[string]string{"email": email},
		NoAuth: true,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.ResetToken, nil
}

// ResetPassword exchanges a reset token plus new password for a fresh token
// pair.
func ResetPassword(resetToken, newPassword string) (*credentials.TokenPair, error) {
	logger.Debug("Resetting password with token")

	var pair credentials.TokenPair
	err := client.Default().DoJSON(http.MethodPost, "/auth/reset-password", &client.Options{
		Body:   map[string]string{"reset_token": resetToken, "new_password": newPassword},
		NoAuth: true,
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// ChangePassword changes the password under the existing session.
func ChangePassword(currentPassword, newPassword string) error {
	logger.Debug("Changing password")

	return client.Default().DoJSON(http.MethodPost, "/auth/change-password", &client.Options{
		Body: map[string]string{"current_password": currentPassword, "new_password": newPassword},
	}, nil)
}
