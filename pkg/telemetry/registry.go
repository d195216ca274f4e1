package telemetry

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/iot-channel-hub/pkg/common"
	"liyu1981.xyz/iot-channel-hub/pkg/models"
)

func (h *Hub) createChannel(channelID string, name string, fields []string) error {
	logger := common.GetLoggerWith(
		common.LoggerNameHubCore,
		zap.String(common.LoggerFieldHubCategory, common.LoggerCategoryHubRegistry),
	)

	channel := models.Channel{
		ChannelID: channelID,
		Name:      name,
		Fields:    models.JoinFields(fields),
	}

	logger.Info("Received channel registration", zap.Reflect("channel", channel))

	// The primary key constraint is the authority on uniqueness, so two
	// concurrent creates of the same id still surface as a conflict.
	if err := h.Db.Conn.Create(&channel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrChannelExists, channelID)
		}
		return err
	}

	logger.Info("Created channel", zap.Reflect("channel", channel))
	return nil
}

func (h *Hub) listChannels() ([]models.Channel, error) {
	var channels []models.Channel
	err := h.Db.Conn.Find(&channels).Error
	return channels, err
}

func (h *Hub) getFields(channelID string) ([]string, bool, error) {
	var channel models.Channel
	err := h.Db.Conn.First(&channel, "channelId = ?", channelID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return channel.FieldList(), true, nil
}

type IRegistryImpl struct {
	hub *Hub
}

func (ir *IRegistryImpl) CreateChannel(channelID string, name string, fields []string) error {
	return ir.hub.createChannel(channelID, name, fields)
}

func (ir *IRegistryImpl) ListChannels() ([]models.Channel, error) {
	return ir.hub.listChannels()
}

func (ir *IRegistryImpl) GetFields(channelID string) ([]string, bool, error) {
	return ir.hub.getFields(channelID)
}

func (h *Hub) GetIRegistry() IRegistry {
	return &IRegistryImpl{hub: h}
}
