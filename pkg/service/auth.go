package service

import (
	"errors"

	"github.com/investorion/cli/pkg/client"
	"github.com/investorion/cli/pkg/formatter"
	"github.com/investorion/cli/pkg/prompter"
	"github.com/investorion/cli/pkg/session"
)

type AuthService struct{}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	return &AuthService{}
}

// Login authenticates with email and password and stores the session
func (s *AuthService) Login(email, password string) error {
	client.Init()

	var err error
	if email == "" {
		email, err = prompter.PromptString("Email: ")
		if err != nil {
			return err
		}
	}
	if password == "" {
		password, err = prompter.PromptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	formatter.PrintInfo("Logging in...")

	if err := Session().Login(email, password); err != nil {
		formatter.PrintError("Login failed: %v", err)
		return err
	}

	user := Session().User()
	formatter.PrintSuccess("✓ Logged in as %s", user.Email)
	return nil
}

// Register creates an account and signs in with the same credentials
func (s *AuthService) Register(email, password, firstName, lastName string) error {
	client.Init()

	var err error
	if email == "" {
		email, err = prompter.PromptString("Email: ")
		if err != nil {
			return err
		}
	}
	if firstName == "" {
		firstName, _ = prompter.PromptString("First name: ")
	}
	if lastName == "" {
		lastName, _ = prompter.PromptString("Last name: ")
	}
	if password == "" {
		password, err = prompter.PromptPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := prompter.PromptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			formatter.PrintError("Passwords do not match")
			return errors.New("passwords do not match")
		}
	}

	formatter.PrintInfo("Creating account...")

	if err := Session().Register(email, password, firstName, lastName); err != nil {
		if errors.Is(err, session.ErrLoginAfterRegister) {
			formatter.PrintWarning("Account created, but automatic login failed: %v", err)
			formatter.PrintInfo("Run 'investorion auth login' to sign in.")
		} else {
			formatter.PrintError("Registration failed: %v", err)
		}
		return err
	}

	formatter.PrintSuccess("✓ Account created and logged in as %s", email)
	return nil
}

// Logout clears the stored session
func (s *AuthService) Logout() error {
	client.Init()
	Session().Logout()
	formatter.PrintSuccess("✓ Logged out")
	return nil
}

// Status shows who is currently logged in
func (s *AuthService) Status() error {
	client.Init()

	if err := Session().Restore(); err != nil {
		formatter.PrintInfo("Not logged in")
		return nil
	}
	if Session().State() != session.StateAuthenticated {
		formatter.PrintInfo("Not logged in")
		return nil
	}

	user := Session().User()
	formatter.PrintKeyValue(map[string]interface{}{
		"Email": user.Email,
		"Name":  user.FullName,
		"State": Session().State().String(),
	})
	return nil
}

// ForgotPassword requests a password reset for the given email
func (s *AuthService) ForgotPassword(email string) error {
	client.Init()

	var err error
	if email == "" {
		email, err = prompter.PromptString("Email: ")
		if err != nil {
			return err
		}
	}

	token, err := Session().RequestPasswordReset(email)
	if err != nil {
		formatter.PrintError("Password reset request failed: %v", err)
		return err
	}

	if token == "" {
		formatter.PrintSuccess("✓ If the email exists, reset instructions were sent to it.")
		return nil
	}

	formatter.PrintSuccess("✓ Reset token issued. Use it with 'investorion auth reset-password'.")
	formatter.PrintInfo("Reset token: %s", token)
	return nil
}

// ResetPassword sets a new password using a reset token. An empty token falls
// back to the one cached by a previous forgot-password call.
func (s *AuthService) ResetPassword(resetToken, newPassword string) error {
	client.Init()

	if resetToken == "" {
		if cached, ok := Session().ConsumeCachedResetToken(); ok {
			resetToken = cached
		}
	}
	var err error
	if resetToken == "" {
		resetToken, err = prompter.PromptString("Reset token: ")
		if err != nil {
			return err
		}
	}
	if newPassword == "" {
		newPassword, err = prompter.PromptPassword("New password: ")
		if err != nil {
			return err
		}
	}

	if err := Session().UpdatePassword(newPassword, session.UpdatePasswordOptions{ResetToken: resetToken}); err != nil {
		formatter.PrintError("Password reset failed: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Password updated and session re-established")
	return nil
}

// ChangePassword changes the password under the current session
func (s *AuthService) ChangePassword(currentPassword, newPassword string) error {
	client.Init()

	var err error
	if currentPassword == "" {
		currentPassword, err = prompter.PromptPassword("Current password: ")
		if err != nil {
			return err
		}
	}
	if newPassword == "" {
		newPassword, err = prompter.PromptPassword("New password: ")
		if err != nil {
			return err
		}
	}

	if err := Session().UpdatePassword(newPassword, session.UpdatePasswordOptions{CurrentPassword: currentPassword}); err != nil {
		formatter.PrintError("Password change failed: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Password changed")
	return nil
}
