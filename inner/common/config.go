package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Общая конфигурация всего приложения
type Config struct {
	DbDriverName   string `validate:"required,oneof=postgres pgx"`
	Dsn            string `validate:"required"`
	AppName        string `validate:"required"`
	AppVersion     string `validate:"required"`
	AppPort        string `validate:"required,numeric"`
	LogLevel       string
	LogDevelopMode bool
	JwtSecret      string        `validate:"required,min=8"`
	JwtTtl         time.Duration `validate:"gt=0"`
	CorsOrigin     string
	MaxOpenConns   int `validate:"gte=1"`
	MaxIdleConns   int `validate:"gte=0"`
}

// Получение конфигурации из .env файла или переменных окружения
func GetConfig(envFile string) Config {
	_ = godotenv.Load(envFile)
	var cfg = Config{
		DbDriverName:   os.Getenv("DB_DRIVER_NAME"),
		Dsn:            os.Getenv("DB_DSN"),
		AppName:        os.Getenv("APP_NAME"),
		AppVersion:     os.Getenv("APP_VERSION"),
		AppPort:        getEnvString("APP_PORT", "8080"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogDevelopMode: getEnvBool("LOG_DEVELOP_MODE", false),
		JwtSecret:      os.Getenv("JWT_SECRET"),
		JwtTtl:         getEnvDuration("JWT_TTL", 24*time.Hour),
		CorsOrigin:     getEnvString("CORS_ORIGIN", "http://localhost:5173"),
		MaxOpenConns:   getEnvInt("DB_MAX_OPEN_CONNS", 20),
		MaxIdleConns:   getEnvInt("DB_MAX_IDLE_CONNS", 5),
	}
	if err := validator.New().Struct(cfg); err != nil {
		panic(fmt.Sprintf("config validation error: %v", err))
	}
	return cfg
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

// длительность можно задать как "15m" или как число секунд
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
