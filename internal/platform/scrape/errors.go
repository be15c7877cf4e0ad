package scrape

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	ErrFetch       = errors.New("scrape: fetch failed")
	ErrCircuitOpen = errors.New("scrape: upstream circuit open")
)

// FetchError carries the upstream status or the network reason of a failed GET.
type FetchError struct {
	URL        string
	StatusCode int
	Reason     string
	// CircuitOpen is set when the request was rejected without being sent.
	CircuitOpen bool
	cause       error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.cause }

func (e *FetchError) Is(target error) bool {
	if target == ErrFetch {
		return true
	}
	return e.CircuitOpen && target == ErrCircuitOpen
}

func newStatusError(url string, status int) error {
	return errors.WithStack(&FetchError{URL: url, StatusCode: status, Reason: "unexpected status"})
}

func newNetworkError(url string, cause error) error {
	return errors.WithStack(&FetchError{URL: url, Reason: cause.Error(), cause: cause})
}

func newCircuitOpenError(url string) error {
	return errors.WithStack(&FetchError{URL: url, Reason: "circuit open", CircuitOpen: true})
}

// StatusCode extracts the upstream status from err, or 0.
func StatusCode(err error) int {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.StatusCode
	}
	return 0
}
