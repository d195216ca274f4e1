package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"liyu1981.xyz/iot-channel-hub/pkg/telemetry"
)

type RestfulServer struct {
	Server           *gin.Engine
	Hub              *telemetry.Hub
	RateLimiterStore *telemetry.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(clientAddr string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(clientAddr)
	}
}

func (rs *RestfulServer) CheckClientLimiter(clientAddr string) bool {
	limiter := rs.GetLimiter(clientAddr)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(clientAddr string, clientRate float64, clientBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(clientAddr, rate.Limit(clientRate), clientBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	api := rs.Server.Group("/api")
	{
		api.POST("/channel", rs.CreateChannel)
		api.GET("/channels", rs.ListChannels)
		api.POST("/data", rs.PostReadings)
		api.GET("/data", rs.PostReadingsFlattened)
		api.GET("/data/:channel_id", rs.GetReadings)
		api.GET("/data/:channel_id/export", rs.ExportReadings)
	}
}
