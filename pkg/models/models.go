package models

import (
	"strings"
	"time"
)

// Channel declares the fixed set of field names readings may carry.
// Fields is stored comma separated; the column layout matches what the
// dashboard tooling reads directly from sqlite.
type Channel struct {
	ChannelID string `gorm:"column:channelId;primaryKey" json:"channelId"`
	Name      string `gorm:"column:name;not null" json:"name"`
	Fields    string `gorm:"column:fields;not null" json:"-"`
}

func (Channel) TableName() string {
	return "channels"
}

func (c *Channel) FieldList() []string {
	return SplitFields(c.Fields)
}

func JoinFields(fields []string) string {
	return strings.Join(fields, ",")
}

func SplitFields(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

// ReadingInput is one (field, value) pair of a submission batch, already
// normalized to text.
type ReadingInput struct {
	Field string
	Value string
}

// Reading is one append-only observation recorded against a channel.
// Value is always text; the timestamp is assigned by the store at insert
// time, never by the client.
type Reading struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"-"`
	ChannelID string    `gorm:"column:channelId;not null;index" json:"channelId"`
	Field     string    `gorm:"column:field;not null" json:"field"`
	Value     string    `gorm:"column:value;not null" json:"value"`
	Timestamp time.Time `gorm:"column:timestamp" json:"timestamp"`
}

func (Reading) TableName() string {
	return "sensor_data"
}
