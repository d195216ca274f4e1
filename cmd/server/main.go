package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"liyu1981.xyz/iot-channel-hub/pkg/common"
	"liyu1981.xyz/iot-channel-hub/pkg/db"
	hubHttp "liyu1981.xyz/iot-channel-hub/pkg/http"
	"liyu1981.xyz/iot-channel-hub/pkg/telemetry"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	hubDbType := os.Getenv(common.EnvKeyHubDBType)
	switch hubDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown HUB_DB_TYPE: " + hubDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyHubHttpHostPort))

	// Rate limit is configuration, not a constant. 50/minute per client
	// address unless overridden.
	ratePerMinute := 50
	if rateStr := strings.TrimSpace(os.Getenv(common.EnvKeyHubRatePerMinute)); rateStr != "" {
		if ratePerMinute, err = strconv.Atoi(rateStr); err != nil || ratePerMinute <= 0 {
			log.Fatal("Invalid HUB_RATE_PER_MINUTE, should be a positive int value")
		}
	}

	logger := common.GetLogger()

	hubCore := telemetry.Hub{
		Db: *dbInstance,
	}
	hubCore.WithServices(telemetry.ServiceOpts{
		Registry: hubCore.GetIRegistry(),
		Store:    hubCore.GetIStore(),
	})

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	logger.Info("Starting HTTP server on port " + httpHostPort)
	rs := &hubHttp.RestfulServer{
		Server:           gin.Default(),
		Hub:              &hubCore,
		RateLimiterStore: telemetry.NewPerMinuteRateLimiterStore(ratePerMinute),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"rate_per_minute\": %v}", ratePerMinute)))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
