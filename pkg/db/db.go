package db

import (
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	constant "liyu1981.xyz/iot-channel-hub/pkg/common"
	"liyu1981.xyz/iot-channel-hub/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

func GetInstance(dialector gorm.Dialector) *DB {
	var logger = constant.GetLogger()
	once.Do(func() {
		conn, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

		instance = &DB{Conn: conn}

		if err := dropLegacySensorData(instance.Conn); err != nil {
			log.Fatal("Failed to check legacy sensor_data table:", err)
		}

		err = instance.Conn.AutoMigrate(&models.Channel{}, &models.Reading{})
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		logger.Info("Database migration completed")

		if err := instance.Conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			log.Fatal("Failed to enable sqlite foreign key support", err)
		}

		if err := instance.Conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			log.Fatal("Failed to set sqlite journal mode", err)
		}
	})
	return instance
}

// dropLegacySensorData drops a pre-channel sensor_data table (one without the
// channelId column) so AutoMigrate can recreate it with the current layout.
func dropLegacySensorData(conn *gorm.DB) error {
	migrator := conn.Migrator()
	if !migrator.HasTable(&models.Reading{}) {
		return nil
	}
	if migrator.HasColumn(&models.Reading{}, "channelId") {
		return nil
	}
	return migrator.DropTable(&models.Reading{})
}

func UseSqliteDialector() gorm.Dialector {
	var dbPath string
	var found bool
	if dbPath, found = os.LookupEnv(constant.EnvKeyHubDbPath); !found {
		dbPath = "channel_data.db"
	}
	return sqlite.Open(dbPath)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}
