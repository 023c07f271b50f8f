package util

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrTransport          = errors.New("submission target unreachable")
	ErrRejected           = errors.New("submission rejected by target")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrUnknownFramework   = errors.New("unknown framework")
	ErrUnknownCatalog     = errors.New("unknown catalog")
	ErrUnknownTarget      = errors.New("unknown submission target")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminDisabled      = errors.New("admin login is not configured")
)
