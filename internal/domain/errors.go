// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// Error classes. Every specific error below wraps exactly one of these.
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvariantViolation = errors.New("invariant violation")

	// User-related errors
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrActivityLogNotFound = fmt.Errorf("activity log %w", ErrNotFound)
	ErrEmailAlreadyExists  = fmt.Errorf("%w: email already exists", ErrInvariantViolation)
	ErrInvalidCredentials  = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)

	// Project domain
	ErrProjectNotFound        = fmt.Errorf("project %w", ErrNotFound)
	ErrNetworkGroupNotFound   = fmt.Errorf("expert network group %w", ErrNotFound)
	ErrExpertNotFound         = fmt.Errorf("expert %w", ErrNotFound)
	ErrCallNotFound           = fmt.Errorf("call %w", ErrNotFound)
	ErrNetworkGroupHasExperts = fmt.Errorf("%w: expert network group still has experts", ErrInvariantViolation)
	ErrExpertProjectMismatch  = fmt.Errorf("%w: expert belongs to a different project", ErrInvalidInput)
	ErrGroupProjectMismatch   = fmt.Errorf("%w: network group belongs to a different project", ErrInvalidInput)

	// Trip domain
	ErrTripNotFound            = fmt.Errorf("trip %w", ErrNotFound)
	ErrOrganizationNotFound    = fmt.Errorf("organization %w", ErrNotFound)
	ErrContactNotFound         = fmt.Errorf("contact %w", ErrNotFound)
	ErrOutreachNotFound        = fmt.Errorf("outreach %w", ErrNotFound)
	ErrMeetingNotFound         = fmt.Errorf("meeting %w", ErrNotFound)
	ErrTripLegNotFound         = fmt.Errorf("trip leg %w", ErrNotFound)
	ErrLodgingNotFound         = fmt.Errorf("lodging %w", ErrNotFound)
	ErrOutreachTripMismatch    = fmt.Errorf("%w: outreach belongs to a different trip", ErrInvalidInput)
	ErrOutreachContactMismatch = fmt.Errorf("%w: outreach was made to a different contact", ErrInvalidInput)
	ErrOutreachOrgMismatch     = fmt.Errorf("%w: outreach was made to a different organization", ErrInvalidInput)
	ErrOrganizationInUse       = fmt.Errorf("%w: organization is referenced by outreach or meetings", ErrInvariantViolation)
	ErrContactInUse            = fmt.Errorf("%w: contact is referenced by outreach or meetings", ErrInvariantViolation)
)

// ValidationError reports which input fields were rejected and why.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, reason string) error {
	return &ValidationError{Fields: map[string]string{field: reason}}
}
