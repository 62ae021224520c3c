package cmd

import (
	"github.com/spf13/cobra"

	"github.com/investorion/cli/pkg/service"
)

var (
	authEmail     string
	authPassword  string
	authFirstName string
	authLastName  string
	resetToken    string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Manage your Investorion session",
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new Investorion account",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService()
		return authSvc.Register(authEmail, authPassword, authFirstName, authLastName)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to Investorion",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService()
		return authSvc.Login(authEmail, authPassword)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService()
		return authSvc.Logout()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService()
		return authSvc.Status()
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService()
		return authSvc.ForgotPassword(authEmail)
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password using a reset token",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService()
		return authSvc.ResetPassword(resetToken, "")
	},
}

var changePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the password of the current account",
	RunE: func(cmd *cobra.Command, args []string) error {
		authSvc := service.NewAuthService()
		return authSvc.ChangePassword("", "")
	},
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, loginCmd, forgotPasswordCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "Account email")
	}
	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringVar(&authPassword, "password", "", "Account password (prompted when omitted)")
	}
	registerCmd.Flags().StringVar(&authFirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&authLastName, "last-name", "", "Last name")
	resetPasswordCmd.Flags().StringVar(&resetToken, "token", "", "Reset token (falls back to the last forgot-password token)")

	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)
	authCmd.AddCommand(forgotPasswordCmd)
	authCmd.AddCommand(resetPasswordCmd)
	authCmd.AddCommand(changePasswordCmd)
}
