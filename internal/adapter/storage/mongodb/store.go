package mongodb

import (
	"slices"

	"github.com/google/uuid"
)

// Ids are uuid strings rather than ObjectIDs so both backends share one
// canonical id form and records can migrate between them untouched.
func newID() string {
	return uuid.NewString()
}

func normalizeSlice(values []string) []string {
	if values == nil {
		return []string{}
	}
	return slices.Clone(values)
}
