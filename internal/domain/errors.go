package domain

import (
	"errors"
	"fmt"
)

var (
	// upstream failure kinds; match with errors.Is on an *UpstreamError
	ErrUpstreamUnreachable = errors.New("upstream unreachable")
	ErrUpstreamStatus      = errors.New("upstream returned non-success status")
	ErrUpstreamSemantic    = errors.New("upstream reported failure")
	ErrUpstreamMalformed   = errors.New("upstream payload malformed")
)

// UpstreamError describes a failed call to a review provider.
type UpstreamError struct {
	Service    string // hostaway | google
	Kind       error  // one of the ErrUpstream* sentinels
	StatusCode int    // HTTP status when Kind == ErrUpstreamStatus
	Status     string // envelope status when Kind == ErrUpstreamSemantic
	Err        error
}

func (e *UpstreamError) Error() string {
	switch e.Kind {
	case ErrUpstreamStatus:
		return fmt.Sprintf("%s: %v: %d", e.Service, e.Kind, e.StatusCode)
	case ErrUpstreamSemantic:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: %s: %v", e.Service, e.Kind, e.Status, e.Err)
		}
		return fmt.Sprintf("%s: %v: %s", e.Service, e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Service, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Service, e.Kind)
}

func (e *UpstreamError) Is(target error) bool { return target == e.Kind }

func (e *UpstreamError) Unwrap() error { return e.Err }
