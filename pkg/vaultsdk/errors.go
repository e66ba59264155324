package vaultsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the vault API.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int

	// Message is the user-facing error message
	Message string

	// RemainingMinutes is set when the account is locked
	RemainingMinutes int

	// Challenge is the next login challenge, when the server issued one
	Challenge *ChallengeResponse
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vault: HTTP %d: %s", e.StatusCode, e.Message)
}

// Locked reports whether the error is an account lockout.
func (e *APIError) Locked() bool {
	return e.StatusCode == http.StatusLocked
}

// parseErrorResponse turns an error body into an *APIError. Bodies that are
// not the standard envelope fall back to the status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:       resp.StatusCode,
			Message:          errResp.Error,
			RemainingMinutes: errResp.RemainingMinutes,
			Challenge:        errResp.Challenge,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
