package store

import "errors"

// Domain errors. Handlers translate these to HTTP statuses in one
// place (the global error handler); the store stays transport-free.
var (
	ErrNotFound            = errors.New("not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrPhoneTaken          = errors.New("phone already registered")
	ErrBadCredential       = errors.New("incorrect password")
	ErrBanned              = errors.New("account is banned")
	ErrPendingVerification = errors.New("account pending verification")
	ErrNotApprovedLawyer   = errors.New("lawyer is not approved")
	ErrProtectedUser       = errors.New("super admin cannot be modified")
	ErrForbidden           = errors.New("action not permitted")
	ErrNotParticipant      = errors.New("not a chat participant")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrInvalidReportType   = errors.New("unknown report type")
)
