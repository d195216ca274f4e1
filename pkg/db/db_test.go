package db

import (
	"sync"
	"testing"

	"liyu1981.xyz/iot-channel-hub/pkg/common"
	_ "liyu1981.xyz/iot-channel-hub/pkg/testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func tableExists(db *gorm.DB, tableName string) bool {
	var count int64
	err := db.Raw(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?`, tableName,
	).Scan(&count).Error
	return err == nil && count > 0
}

func TestWithMemorySqlite(t *testing.T) {
	common.SetTestLoggerNop()

	dialector := UseMemorySqliteDialector()

	instance := GetInstance(dialector)
	if instance == nil {
		t.Fatal("Expected non-nil DB instance")
	}

	var tables = []string{"channels", "sensor_data"}
	for _, table := range tables {
		if !tableExists(instance.Conn, table) {
			t.Errorf("Expected table %q to exist after migration", table)
		}
	}
}

func TestSingletonConcurrency(t *testing.T) {
	common.SetTestLoggerNop()

	const goroutineCount = 20

	var wg sync.WaitGroup
	instances := make(chan *DB, goroutineCount)

	for n := 0; n < goroutineCount; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			instance := GetInstance(UseMemorySqliteDialector())
			instances <- instance
		}()
	}

	wg.Wait()
	close(instances)

	var first *DB
	for inst := range instances {
		if first == nil {
			first = inst
			continue
		}
		if inst != first {
			t.Error("Expected all instances to be the same (singleton), but found different ones")
		}
	}
}

func TestDropLegacySensorData(t *testing.T) {
	common.SetTestLoggerNop()

	// separate in-memory database so the singleton is untouched
	conn, err := gorm.Open(sqlite.Open("file:legacydb?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// pre-channel layout: no channelId column
	if err := conn.Exec(
		`CREATE TABLE sensor_data (id INTEGER PRIMARY KEY AUTOINCREMENT, field TEXT, value TEXT)`,
	).Error; err != nil {
		t.Fatalf("Failed to create legacy table: %v", err)
	}

	if err := dropLegacySensorData(conn); err != nil {
		t.Fatalf("dropLegacySensorData failed: %v", err)
	}
	if tableExists(conn, "sensor_data") {
		t.Error("Expected legacy sensor_data table to be dropped")
	}

	// current layout survives the check
	if err := conn.Exec(
		`CREATE TABLE sensor_data (id INTEGER PRIMARY KEY AUTOINCREMENT, channelId TEXT, field TEXT, value TEXT, timestamp DATETIME)`,
	).Error; err != nil {
		t.Fatalf("Failed to create current table: %v", err)
	}

	if err := dropLegacySensorData(conn); err != nil {
		t.Fatalf("dropLegacySensorData failed: %v", err)
	}
	if !tableExists(conn, "sensor_data") {
		t.Error("Expected current sensor_data table to be kept")
	}
}
