package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrBaseCurrency indicates an attempt to retire the tenant's active base currency.
var ErrBaseCurrency = errors.New("cannot retire base currency")

// ErrInvalidPair indicates an exchange rate referencing an invalid currency pair,
// either identical from/to currencies or a currency owned by another tenant.
var ErrInvalidPair = errors.New("invalid currency pair")

// ErrTooManyItems indicates a bulk request exceeding the allowed item cap.
var ErrTooManyItems = errors.New("too many items in bulk request")

// ErrUnauthorized indicates missing or invalid authentication credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated user may not perform the action.
var ErrForbidden = errors.New("forbidden")
