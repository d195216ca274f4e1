package telemetry

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/iot-channel-hub/pkg/common"
	"liyu1981.xyz/iot-channel-hub/pkg/models"
)

func (h *Hub) insertReadings(channelID string, items []models.ReadingInput) (int, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameHubCore,
		zap.String(common.LoggerFieldHubCategory, common.LoggerCategoryHubStore),
	)

	if h.Registry == nil {
		return 0, fmt.Errorf("registry service not available")
	}

	fields, found, err := h.Registry.GetFields(channelID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrChannelNotFound, channelID)
	}

	allowed := common.Reducer(fields, func(acc map[string]bool, field string) map[string]bool {
		acc[field] = true
		return acc
	}, map[string]bool{})

	// The first disallowed field aborts the whole batch.
	for _, item := range items {
		if !allowed[item.Field] {
			return 0, &FieldNotAllowedError{Field: item.Field, ChannelID: channelID}
		}
	}

	if len(items) == 0 {
		return 0, nil
	}

	readings := common.Mapper(items, func(item models.ReadingInput) models.Reading {
		return models.Reading{
			ChannelID: channelID,
			Field:     item.Field,
			Value:     item.Value,
			Timestamp: time.Now(),
		}
	})

	logger.Info("Received readings for channel",
		zap.String("channelId", channelID), zap.Int("count", len(readings)))

	if err := h.Db.Conn.Create(&readings).Error; err != nil {
		return 0, err
	}

	logger.Info("Inserted readings for channel",
		zap.String("channelId", channelID), zap.Int("count", len(readings)))
	return len(readings), nil
}

func (h *Hub) fetchReadings(channelID string) ([]models.Reading, error) {
	var readings []models.Reading
	query := h.Db.Conn.Order("timestamp asc, id asc")
	if channelID != "" {
		query = query.Where("channelId = ?", channelID)
	}
	err := query.Find(&readings).Error
	return readings, err
}

type IStoreImpl struct {
	hub *Hub
}

func (is *IStoreImpl) InsertReadings(channelID string, items []models.ReadingInput) (int, error) {
	return is.hub.insertReadings(channelID, items)
}

func (is *IStoreImpl) FetchReadings(channelID string) ([]models.Reading, error) {
	return is.hub.fetchReadings(channelID)
}

func (h *Hub) GetIStore() IStore {
	return &IStoreImpl{hub: h}
}
