package canary

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a request failed.
type ErrorKind int

const (
	KindTransport ErrorKind = iota + 1
	KindStatus
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// FetchError is returned by every Client method when a request fails.
type FetchError struct {
	Kind       ErrorKind
	Path       string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
	case KindDecode:
		return fmt.Sprintf("decode response: %v", e.Err)
	default:
		return fmt.Sprintf("execute request: %v", e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from err. Errors that did not come from
// the client count as transport failures.
func KindOf(err error) ErrorKind {
	if err == nil {
		return 0
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindTransport
}
