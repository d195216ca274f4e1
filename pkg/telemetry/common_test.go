package telemetry

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"go.uber.org/mock/gomock"
	"liyu1981.xyz/iot-channel-hub/pkg/db"
	"liyu1981.xyz/iot-channel-hub/pkg/telemetry/mocks"
)

func GetMockHubWithMemorySqliteDialector(t *testing.T, useMockRegistry, useMockStore bool) (
	*gomock.Controller,
	*Hub,
	*mocks.MockIRegistry,
	*mocks.MockIStore,
) {
	ctrl := gomock.NewController(t)

	mockIRegistry := mocks.NewMockIRegistry(ctrl)
	mockIStore := mocks.NewMockIStore(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	hubInstance := (&Hub{Db: *dbInstance})

	registryService := hubInstance.GetIRegistry()
	if useMockRegistry {
		registryService = mockIRegistry
	}

	storeService := hubInstance.GetIStore()
	if useMockStore {
		storeService = mockIStore
	}

	hubInstance.WithServices(ServiceOpts{
		Registry: registryService,
		Store:    storeService,
	})

	return ctrl, hubInstance, mockIRegistry, mockIStore
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
