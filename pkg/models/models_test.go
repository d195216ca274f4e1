package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldsRoundTrip(t *testing.T) {
	fields := []string{"temperature", "humidity", "pressure"}

	channel := Channel{
		ChannelID: "ch1",
		Name:      "Room1",
		Fields:    JoinFields(fields),
	}

	assert.Equal(t, "temperature,humidity,pressure", channel.Fields)
	assert.Equal(t, fields, channel.FieldList())
}

func TestSplitFields_Empty(t *testing.T) {
	assert.Nil(t, SplitFields(""))
}
