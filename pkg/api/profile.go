package api

import (
	"net/http"

	"github.com/investorion/cli/pkg/client"
	"github.com/investorion/cli/pkg/logger"
)

// GetProfile fetches the current user's profile.
func GetProfile() (*Profile, error) {
	logger.Debug("Fetching profile")

	var profile Profile
	if err := client.Default().DoJSON(http.MethodGet, "/profile/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile patches profile fields. Only non-nil fields are sent.
func UpdateProfile(update ProfileUpdate) (*Profile, error) {
	logger.Debug("Updating profile")

	var profile Profile
	err := client.Default().DoJSON(http.MethodPatch, "/profile/me", &client.Options{Body: update}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UploadAvatar uploads an avatar image and returns the backend's avatar URL,
// which may be a relative path.
func UploadAvatar(filename string, content []byte) (string, error) {
	logger.Debug("Uploading avatar", "file", filename)

	var resp struct {
		AvatarURL string `json:"avatar_url"`
	}
	err := client.Default().DoJSON(http.MethodPost, "/profile/me/avatar", &client.Options{
		File: &client.FileUpload{Param: "file", Name: filename, Content: content},
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AvatarURL, nil
}
