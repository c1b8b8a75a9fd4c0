package domain

import "errors"

var (
	// ErrValidation covers missing or malformed required input. No side
	// effects have been performed when it is returned.
	ErrValidation = errors.New("validation failed")

	// ErrPermissionDenied means a role or ownership gate failed. The guarded
	// mutation was not performed.
	ErrPermissionDenied = errors.New("permission denied")

	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// Identity gateway rejections, surfaced verbatim to the operator.
	ErrEmailInUse   = errors.New("email already in use")
	ErrInvalidEmail = errors.New("invalid email")
	ErrUserNotFound = errors.New("user not found")

	ErrProfileNotFound = errors.New("profile not found")
	ErrArticleNotFound = errors.New("article not found")
	ErrInvalidCategory = errors.New("invalid category")

	// ErrPartialProvisioning marks a provisioning run that failed after the
	// principal was created but before the credential-setup notification went
	// out. The account exists with an unusable placeholder credential and
	// needs manual reconciliation.
	ErrPartialProvisioning = errors.New("provisioning incomplete, manual reconciliation required")
)
