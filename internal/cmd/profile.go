package cmd

import (
	"github.com/spf13/cobra"

	"github.com/investorion/cli/pkg/service"
)

var avatarPath string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile commands",
	Long:  "View and edit your Investorion profile",
}

var profileViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc := service.NewProfileService()
		return profileSvc.ViewProfile()
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit profile fields interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc := service.NewProfileService()
		return profileSvc.EditProfile()
	},
}

var profileAvatarCmd = &cobra.Command{
	Use:   "avatar",
	Short: "Upload a profile picture",
	RunE: func(cmd *cobra.Command, args []string) error {
		profileSvc := service.NewProfileService()
		return profileSvc.UploadAvatar(avatarPath)
	},
}

func init() {
	profileAvatarCmd.Flags().StringVar(&avatarPath, "file", "", "Path to the image file")

	profileCmd.AddCommand(profileViewCmd)
	profileCmd.AddCommand(profileEditCmd)
	profileCmd.AddCommand(profileAvatarCmd)
}
