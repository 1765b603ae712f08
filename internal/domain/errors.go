package domain

import "fmt"

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// UnauthorizedError means no usable credential accompanied the request.
type UnauthorizedError struct {
	Reason string
}

func (e UnauthorizedError) Error() string {
	if e.Reason == "" {
		return "unauthorized"
	}
	return fmt.Sprintf("unauthorized: %s", e.Reason)
}

func (e UnauthorizedError) Is(target error) bool {
	_, ok := target.(UnauthorizedError)
	if ok {
		return true
	}
	_, ok = target.(*UnauthorizedError)
	return ok
}

var ErrUnauthorized = UnauthorizedError{}

// ForbiddenError means a credential was presented but ownership failed.
type ForbiddenError struct {
	Subject string
}

func (e ForbiddenError) Error() string {
	if e.Subject == "" {
		return "forbidden"
	}
	return fmt.Sprintf("forbidden for subject %s", e.Subject)
}

func (e ForbiddenError) Is(target error) bool {
	_, ok := target.(ForbiddenError)
	if ok {
		return true
	}
	_, ok = target.(*ForbiddenError)
	return ok
}

var ErrForbidden = ForbiddenError{}

// InvalidTokenError covers signature, expiry, and binding failures.
type InvalidTokenError struct {
	Reason string
}

func (e InvalidTokenError) Error() string {
	if e.Reason == "" {
		return "invalid token"
	}
	return fmt.Sprintf("invalid token: %s", e.Reason)
}

func (e InvalidTokenError) Is(target error) bool {
	_, ok := target.(InvalidTokenError)
	if ok {
		return true
	}
	_, ok = target.(*InvalidTokenError)
	return ok
}

var ErrInvalidToken = InvalidTokenError{}

// UpstreamError wraps a storage or session collaborator failure.
type UpstreamError struct {
	Op  string
	Err error
}

func (e UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("upstream failure in %s", e.Op)
	}
	return fmt.Sprintf("upstream failure in %s: %v", e.Op, e.Err)
}

func (e UpstreamError) Unwrap() error {
	return e.Err
}

func (e UpstreamError) Is(target error) bool {
	_, ok := target.(UpstreamError)
	if ok {
		return true
	}
	_, ok = target.(*UpstreamError)
	return ok
}

var ErrUpstream = UpstreamError{}
