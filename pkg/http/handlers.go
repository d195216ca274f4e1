package http

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"liyu1981.xyz/iot-channel-hub/pkg/common"
	"liyu1981.xyz/iot-channel-hub/pkg/models"
	"liyu1981.xyz/iot-channel-hub/pkg/telemetry"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

type CreateChannelRequest struct {
	ChannelID string   `json:"channelId"`
	Name      string   `json:"name"`
	Fields    []string `json:"fields"`
}

var createChannelSchema = z.Struct(z.Shape{
	"ChannelID": z.String().Min(1).Required(),
	"Name":      z.String().Min(1).Required(),
	"Fields":    z.Slice(z.String().Min(1)).Min(1).Required(),
})

func (rs *RestfulServer) CreateChannel(c *gin.Context) {
	var req CreateChannelRequest

	if err := createChannelSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := rs.Hub.Registry.CreateChannel(req.ChannelID, req.Name, req.Fields); err != nil {
		rs.writeHubError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Channel created"})
}

type ChannelResponse struct {
	ChannelID string   `json:"channelId"`
	Name      string   `json:"name"`
	Fields    []string `json:"fields"`
}

func (rs *RestfulServer) ListChannels(c *gin.Context) {
	channels, err := rs.Hub.Registry.ListChannels()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"channels": common.Mapper(channels, func(channel models.Channel) ChannelResponse {
			return ChannelResponse{
				ChannelID: channel.ChannelID,
				Name:      channel.Name,
				Fields:    channel.FieldList(),
			}
		}),
	})
}

type ReadingItem struct {
	Field string `json:"field" zog:"field"`
	Value string `json:"value" zog:"value"`
}

type SubmitReadingsRequest struct {
	ChannelID string        `json:"channelId"`
	Data      []ReadingItem `json:"data"`
}

var readingItemSchema = z.Struct(z.Shape{
	"Field": z.String().Min(1).Required(),
	"Value": z.String().Required(),
})

var submitReadingsSchema = z.Struct(z.Shape{
	"ChannelID": z.String().Min(1).Required(),
	"Data":      z.Slice(readingItemSchema).Min(1).Required(),
})

func (rs *RestfulServer) PostReadings(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req SubmitReadingsRequest

	if err := submitReadingsSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	items := common.Mapper(req.Data, func(item ReadingItem) models.ReadingInput {
		return models.ReadingInput{Field: item.Field, Value: item.Value}
	})

	count, err := rs.Hub.Store.InsertReadings(req.ChannelID, items)
	if err != nil {
		rs.writeHubError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Data inserted", "count": count})
}

// FlattenedSubmitRequest is the query-string submission shape for constrained
// clients (e.g. ESP8266 over AT commands) that cannot send JSON bodies. Pair 1
// is mandatory; pairs 2-5 count only when both halves are present.
type FlattenedSubmitRequest struct {
	ChannelID string `zog:"channelId"`
	Field1    string `zog:"field1"`
	Value1    string `zog:"value1"`
	Field2    string `zog:"field2"`
	Value2    string `zog:"value2"`
	Field3    string `zog:"field3"`
	Value3    string `zog:"value3"`
	Field4    string `zog:"field4"`
	Value4    string `zog:"value4"`
	Field5    string `zog:"field5"`
	Value5    string `zog:"value5"`
}

var flattenedSubmitSchema = z.Struct(z.Shape{
	"ChannelID": z.String().Min(1).Required(),
	"Field1":    z.String().Min(1).Required(),
	"Value1":    z.String().Required(),
	"Field2":    z.String().Optional(),
	"Value2":    z.String().Optional(),
	"Field3":    z.String().Optional(),
	"Value3":    z.String().Optional(),
	"Field4":    z.String().Optional(),
	"Value4":    z.String().Optional(),
	"Field5":    z.String().Optional(),
	"Value5":    z.String().Optional(),
})

func (req *FlattenedSubmitRequest) items() []models.ReadingInput {
	items := []models.ReadingInput{{Field: req.Field1, Value: req.Value1}}
	optional := [][2]string{
		{req.Field2, req.Value2},
		{req.Field3, req.Value3},
		{req.Field4, req.Value4},
		{req.Field5, req.Value5},
	}
	for _, pair := range optional {
		if pair[0] != "" && pair[1] != "" {
			items = append(items, models.ReadingInput{Field: pair[0], Value: pair[1]})
		}
	}
	return items
}

func (rs *RestfulServer) PostReadingsFlattened(c *gin.Context) {
	if !rs.CheckClientLimiter(c.ClientIP()) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req FlattenedSubmitRequest

	if err := flattenedSubmitSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	count, err := rs.Hub.Store.InsertReadings(req.ChannelID, req.items())
	if err != nil {
		rs.writeHubError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Data inserted", "count": count})
}

func (rs *RestfulServer) GetReadings(c *gin.Context) {
	channelID := c.Param("channel_id")

	readings, err := rs.Hub.Store.FetchReadings(channelID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if readings == nil {
		readings = []models.Reading{}
	}

	c.JSON(http.StatusOK, gin.H{"data": readings})
}

func (rs *RestfulServer) ExportReadings(c *gin.Context) {
	channelID := c.Param("channel_id")

	readings, err := rs.Hub.Store.FetchReadings(channelID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rows := [][]string{{"channelId", "field", "value", "timestamp"}}
	for _, reading := range readings {
		rows = append(rows, []string{
			reading.ChannelID,
			reading.Field,
			reading.Value,
			reading.Timestamp.Format(time.RFC3339),
		})
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(rows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_data.csv", channelID))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeHubError maps registry/store failures onto the client/server divide:
// everything the caller can fix is a 400, the rest is a 500.
func (rs *RestfulServer) writeHubError(c *gin.Context, err error) {
	var fieldErr *telemetry.FieldNotAllowedError
	switch {
	case errors.Is(err, telemetry.ErrChannelExists),
		errors.Is(err, telemetry.ErrChannelNotFound),
		errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
