package service

import (
	"os"
	"path/filepath"

	"github.com/investorion/cli/pkg/api"
	"github.com/investorion/cli/pkg/client"
	cerrors "github.com/investorion/cli/pkg/errors"
	"github.com/investorion/cli/pkg/formatter"
	"github.com/investorion/cli/pkg/mock"
	"github.com/investorion/cli/pkg/portfolio"
	"github.com/investorion/cli/pkg/prompter"
)

type ProfileService struct{}

// NewProfileService creates a new profile service
func NewProfileService() *ProfileService {
	return &ProfileService{}
}

// ViewProfile shows the current user's profile
func (s *ProfileService) ViewProfile() error {
	client.Init()

	var profile *api.Profile
	if mockEnabled() {
		profile = mock.Profile()
	} else {
		var err error
		profile, err = api.GetProfile()
		if err != nil {
			formatter.PrintError("Failed to fetch profile: %v", err)
			return err
		}
	}

	mapped := portfolio.MapProfile(*profile, client.Default().BaseURL())
	formatter.PrintKeyValue(map[string]interface{}{
		"Name":   mapped.FullName,
		"Email":  mapped.Email,
		"CPF":    mapped.CPF,
		"Phone":  mapped.Phone,
		"Avatar": mapped.AvatarURL,
	})
	return nil
}

// EditProfile interactively updates profile fields, keeping blanks unchanged
func (s *ProfileService) EditProfile() error {
	client.Init()

	current, err := api.GetProfile()
	if err != nil {
		formatter.PrintError("Failed to fetch current profile: %v", err)
		return err
	}

	formatter.PrintInfo("Editing profile (leave blank to keep current value)")

	update := api.ProfileUpdate{}
	if name, _ := prompter.PromptString("Full name [" + current.FullName + "]: "); name != "" {
		update.FullName = &name
	}
	if phone, _ := prompter.PromptString("Phone [" + current.Phone + "]: "); phone != "" {
		update.Phone = &phone
	}
	if birthDate, _ := prompter.PromptString("Birth date [" + current.BirthDate + "]: "); birthDate != "" {
		update.BirthDate = &birthDate
	}

	formatter.PrintInfo("Updating profile...")

	updated, err := api.UpdateProfile(update)
	if err != nil {
		formatter.PrintError("Failed to update profile: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Profile updated")
	formatter.PrintKeyValue(map[string]interface{}{
		"Name":       updated.FullName,
		"Phone":      updated.Phone,
		"Birth date": updated.BirthDate,
	})
	return nil
}

// UploadAvatar uploads a local image file as the profile picture
func (s *ProfileService) UploadAvatar(path string) error {
	client.Init()

	var err error
	if path == "" {
		path, err = prompter.PromptString("Avatar file path: ")
		if err != nil {
			return err
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		cliErr := cerrors.FileNotFoundError(path)
		formatter.PrintError("%v", cliErr)
		return cliErr
	}

	formatter.PrintInfo("Uploading avatar...")

	avatarURL, err := api.UploadAvatar(filepath.Base(path), content)
	if err != nil {
		formatter.PrintError("Avatar upload failed: %v", err)
		return err
	}

	resolved := portfolio.NormalizeMediaURL(client.Default().BaseURL(), avatarURL)
	formatter.PrintSuccess("✓ Avatar updated")
	formatter.PrintInfo("Avatar URL: %s", resolved)
	return nil
}
