package telemetry

import (
	"liyu1981.xyz/iot-channel-hub/pkg/db"
	"liyu1981.xyz/iot-channel-hub/pkg/models"
)

type IRegistry interface {
	CreateChannel(channelID string, name string, fields []string) error
	ListChannels() ([]models.Channel, error)
	GetFields(channelID string) ([]string, bool, error)
}

type IStore interface {
	InsertReadings(channelID string, items []models.ReadingInput) (int, error)
	FetchReadings(channelID string) ([]models.Reading, error)
}

type Hub struct {
	Db       db.DB
	Registry IRegistry
	Store    IStore
}

type ServiceOpts struct {
	Registry IRegistry
	Store    IStore
}

func (h *Hub) WithServices(opts ServiceOpts) *Hub {
	if opts.Registry != nil {
		h.Registry = opts.Registry
	}
	if opts.Store != nil {
		h.Store = opts.Store
	}
	return h
}
