package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyHubDBType string = "HUB_DB_TYPE"
	EnvKeyHubDbPath string = "HUB_DB_PATH"

	EnvKeyHubHttpHostPort string = "HUB_HTTP_HOST_PORT"

	EnvKeyHubRatePerMinute string = "HUB_RATE_PER_MINUTE"

	LoggerNameHubCore         string = "hub_core"
	LoggerNameRestfulServer   string = "restful_server"
	LoggerFieldHubCategory    string = "category"
	LoggerCategoryHubRegistry string = "registry"
	LoggerCategoryHubStore    string = "store"
)
