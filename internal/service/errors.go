package service

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindAccessDenied
	KindValidation
	KindUpstreamUnavailable
	KindUpstreamAuthFailed
	KindUpstreamRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAccessDenied:
		return "access_denied"
	case KindValidation:
		return "validation"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindUpstreamAuthFailed:
		return "upstream_auth_failed"
	case KindUpstreamRateLimited:
		return "upstream_rate_limited"
	default:
		return "internal"
	}
}

// Error is returned by every service operation that fails. Message is safe
// to show to the caller; Err, when set, is the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func notFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func accessDenied(msg string) error {
	return &Error{Kind: KindAccessDenied, Message: msg}
}

func invalid(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf reports the kind of err, KindInternal for anything that is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
