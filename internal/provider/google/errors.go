package google

import (
	"errors"

	ai "github.com/spetersoncode/gipwrap"
	"google.golang.org/genai"
)

// wrapError categorizes a GenAI API error by status code.
// genai.APIError does not expose response headers, so no Retry-After is
// available.
func wrapError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	return ai.NewError(ai.CategorizeStatus(apiErr.Code), "google: request failed", apiErr.Code, 0, err)
}
