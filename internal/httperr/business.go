package httperr

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindInvalidTransition Kind = "invalid_transition"
	KindWindowViolation   Kind = "window_violation"
	KindLimitExceeded     Kind = "limit_exceeded"
	KindSlotTaken         Kind = "slot_taken"
	KindUnauthorized      Kind = "unauthorized"
	KindTimeout           Kind = "timeout"
	KindInvalid           Kind = "invalid_request"
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return string(e.Kind) + ": " + e.Code
}

func ErrBusiness(kind Kind, code string) error {
	return BusinessError{Kind: kind, Code: code}
}

func NotFoundErr(code string) error          { return ErrBusiness(KindNotFound, code) }
func InvalidTransitionErr(code string) error { return ErrBusiness(KindInvalidTransition, code) }
func WindowViolationErr(code string) error   { return ErrBusiness(KindWindowViolation, code) }
func LimitExceededErr(code string) error     { return ErrBusiness(KindLimitExceeded, code) }
func SlotTakenErr(code string) error         { return ErrBusiness(KindSlotTaken, code) }
func UnauthorizedErr(code string) error      { return ErrBusiness(KindUnauthorized, code) }
func TimeoutErr(code string) error           { return ErrBusiness(KindTimeout, code) }
func InvalidErr(code string) error           { return ErrBusiness(KindInvalid, code) }

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// KindOf returns the taxonomy entry of err, or "" for infrastructure errors.
// A deadline hit anywhere below counts as a timeout.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return ""
}

// Retryable reports whether the caller may re-run availability and resubmit.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindTimeout, KindSlotTaken:
		return true
	}
	return false
}

// IsUniqueViolation matches the postgres unique_violation raised by the
// scheduled-slot index.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsExclusionConflict matches an exclusion constraint violation.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}
