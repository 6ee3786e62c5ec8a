package mediacore

import (
	"errors"
	"fmt"
)

var (
	ErrBackendRequired = errors.New("requires backend")
	ErrMissingInput    = errors.New("input is required")
	ErrInvalidBitrate  = errors.New("invalid bitrate format")
	ErrInvalidFormat   = errors.New("unsupported output format")
	// ErrDecode marks a 2xx backend reply whose body did not match the
	// expected shape. The backend may already have done the work.
	ErrDecode = errors.New("undecodable backend response")
)

// StatusError is returned when the backend answers outside the 2xx range.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned error: %d", e.Code)
	}
	return fmt.Sprintf("backend returned error: %d - %s", e.Code, e.Body)
}
