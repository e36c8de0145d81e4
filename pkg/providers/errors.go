package providers

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrorKind classifies why a fetch produced no articles.
type ErrorKind int

const (
	// KindTransport covers network-level failures before a response arrived.
	KindTransport ErrorKind = iota + 1
	// KindStatus is a response with a non-2xx status.
	KindStatus
	// KindMalformed is a 2xx response whose body could not be used.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// FetchError is returned by fetchers for every failed request.
type FetchError struct {
	Kind       ErrorKind
	Provider   string
	Mode       Mode
	StatusCode int
	Status     string
	Snippet    string
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("%s %s request returned status %d body: %s", e.Provider, e.Mode, e.StatusCode, e.Snippet)
	case KindMalformed:
		return fmt.Sprintf("%s %s response malformed: %v", e.Provider, e.Mode, e.Err)
	default:
		return fmt.Sprintf("%s %s request failed: %v", e.Provider, e.Mode, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsKind reports whether err is a FetchError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == kind
}

// redactURLError strips query strings from url.Error values so credentials never reach logs.
func redactURLError(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	if i := strings.IndexByte(ue.URL, '?'); i >= 0 {
		ue.URL = ue.URL[:i]
	}
	return err
}
