package github

import (
	"errors"
	"fmt"

	gh "github.com/google/go-github/v57/github"
)

// RemoteError is a non-success HTTP status from the hosting API. The
// provider-supplied message is carried verbatim.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("github api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("github api error: status %d: %s", e.StatusCode, e.Message)
}

// RateLimited reports whether the status suggests an exhausted rate limit,
// so callers can hint at supplying an access token.
func (e *RemoteError) RateLimited() bool {
	return e.StatusCode == 403 || e.StatusCode == 429
}

// TransportError is a network-level failure: DNS, TLS, timeout. No
// distinction is made between those at the user-visible layer.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("github transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// wrapAPIError converts go-github errors into the package taxonomy.
func wrapAPIError(err error) error {
	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) {
		status := 0
		if errResp.Response != nil {
			status = errResp.Response.StatusCode
		}
		return &RemoteError{StatusCode: status, Message: errResp.Message}
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		status := 403
		if rateErr.Response != nil {
			status = rateErr.Response.StatusCode
		}
		return &RemoteError{StatusCode: status, Message: rateErr.Message}
	}

	return &TransportError{Err: err}
}
