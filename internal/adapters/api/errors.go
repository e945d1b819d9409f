package api

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes the remote service uses for credential failures.
const codeInvalidToken = 40101

// APIError is a well-formed error payload returned by the remote service:
// the request reached it, but it refused the operation.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// IsInvalidToken reports whether err is the distinguished credential error
// that requires the re-provisioning flow rather than a retry.
func IsInvalidToken(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == codeInvalidToken ||
		strings.Contains(apiErr.Message, "Token was invalid or missing")
}
