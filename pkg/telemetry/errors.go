package telemetry

import (
	"errors"
	"fmt"
)

var (
	// ErrChannelExists is returned when creating a channel whose id is
	// already registered. Re-creation is never treated as idempotent.
	ErrChannelExists = errors.New("channel already exists")

	// ErrChannelNotFound is returned when submitting readings to an
	// unknown channel. Fetching an unknown channel is not an error, it
	// yields an empty result set.
	ErrChannelNotFound = errors.New("channel does not exist")
)

// FieldNotAllowedError rejects a whole submission batch when any field in
// it is not declared by the channel. Nothing from the batch is persisted.
type FieldNotAllowedError struct {
	Field     string
	ChannelID string
}

func (e *FieldNotAllowedError) Error() string {
	return fmt.Sprintf("field %s not allowed in channel %s", e.Field, e.ChannelID)
}
