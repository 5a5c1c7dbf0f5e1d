package domain

import "github.com/google/uuid"

// newID returns a fresh task identifier. Swapped in tests that need
// deterministic ids.
var newID = func() string {
	return uuid.NewString()
}
