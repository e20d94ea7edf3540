package service

import "errors"

// Session errors
var (
	// ErrStaleLoad indicates that a newer load superseded this one.
	ErrStaleLoad = errors.New("stale load discarded")

	// ErrSaveInProgress indicates that a save for the same page is already running.
	ErrSaveInProgress = errors.New("save already in progress")

	// ErrNoPageLoaded indicates an operation that needs a loaded page.
	ErrNoPageLoaded = errors.New("no page loaded")

	// ErrRevisionsUnsupported indicates a store that does not keep revisions.
	ErrRevisionsUnsupported = errors.New("store does not keep revisions")

	// ErrListingUnsupported indicates a store that cannot enumerate its pages.
	ErrListingUnsupported = errors.New("store cannot list pages")
)
