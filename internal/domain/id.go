package domain

import "github.com/google/uuid"

// ID prefixes, one per entity kind.
const (
	PrefixSection   = "section"
	PrefixRow       = "row"
	PrefixColumn    = "col"
	PrefixComponent = "cmp"
)

// MakeID returns a new process-unique identifier tagged with prefix,
// e.g. "cmp-6f1c...". IDs are never reused.
func MakeID(prefix string) string {
	return prefix + "-" + uuid.New().String()
}
