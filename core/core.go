package core

import "github.com/google/uuid"

// NewID returns a random identifier used for runs and tool calls that arrive
// without a provider-assigned id.
func NewID() string { return uuid.NewString() }
