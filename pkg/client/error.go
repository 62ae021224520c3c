package client

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"

	cerrors "github.com/investorion/cli/pkg/errors"
)

// errorBody covers the API's conventional error shapes: a plain detail
// string, a validation detail list, or a message field.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type validationItem struct {
	Msg string `json:"msg"`
}

// extractMessage pulls a human-readable message out of an error response
// body, falling back to a generic status-code message.
func extractMessage(body []byte, statusCode int) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if len(parsed.Detail) > 0 {
			var detail string
			if err := json.Unmarshal(parsed.Detail, &detail); err == nil && detail != "" {
				return detail
			}
			var items []validationItem
			if err := json.Unmarshal(parsed.Detail, &items); err == nil && len(items) > 0 && items[0].Msg != "" {
				return items[0].Msg
			}
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return fmt.Sprintf("HTTP %d calling the Investorion API", statusCode)
}

// ParseError converts a non-success response into a categorized CLIError.
func ParseError(resp *resty.Response) error {
	statusCode := resp.StatusCode()
	message := extractMessage(resp.Body(), statusCode)

	var errType cerrors.ErrorType
	switch {
	case statusCode == http.StatusUnauthorized:
		errType = cerrors.ErrorTypeUnauthorized
	case statusCode == http.StatusForbidden:
		errType = cerrors.ErrorTypeForbidden
	case statusCode == http.StatusNotFound:
		errType = cerrors.ErrorTypeNotFound
	case statusCode == http.StatusConflict:
		errType = cerrors.ErrorTypeConflict
	case statusCode == http.StatusTooManyRequests:
		errType = cerrors.ErrorTypeRateLimit
	case statusCode >= 500:
		errType = cerrors.ErrorTypeServer
	case statusCode >= 400:
		errType = cerrors.ErrorTypeValidation
	default:
		errType = cerrors.ErrorTypeHTTP
	}

	err := cerrors.NewCLIError(errType, message, nil)
	err.StatusCode = statusCode
	return err
}

// IsUnauthorized checks if an error carries a 401 status.
func IsUnauthorized(err error) bool {
	cliErr := cerrors.CategorizeError(err)
	return cliErr != nil && cliErr.StatusCode == http.StatusUnauthorized
}

// IsNotFound checks if an error carries a 404 status.
func IsNotFound(err error) bool {
	cliErr := cerrors.CategorizeError(err)
	return cliErr != nil && cliErr.StatusCode == http.StatusNotFound
}
