package domain

import "errors"

// Model errors
var (
	// ErrUnknownComponentType indicates a component type outside the closed set.
	ErrUnknownComponentType = errors.New("unknown component type")

	// ErrInvalidPatch indicates a property patch that does not fit the component's props.
	ErrInvalidPatch = errors.New("invalid props patch")
)

// Persistence errors
var (
	// ErrPageNotFound indicates that no page is stored under the requested key.
	ErrPageNotFound = errors.New("page not found")

	// ErrRevisionNotFound indicates that a stored revision does not exist.
	ErrRevisionNotFound = errors.New("revision not found")

	// ErrInvalidLanguage indicates a language tag that cannot be parsed.
	ErrInvalidLanguage = errors.New("invalid language tag")
)
