package testutils

import "ems/inner/common"

// NewTestLogger логгер с уровнем DEBUG для тестов
func NewTestLogger() *common.Logger {
	cfg := common.Config{
		DbDriverName:   "postgres",
		Dsn:            "localhost port=5432 user=wronguser password=wrongpass dbname=postgres sslmode=disable",
		AppName:        "test_app",
		AppVersion:     "1.0.0",
		LogLevel:       "DEBUG",
		LogDevelopMode: true,
	}
	return common.NewLogger(cfg)
}
