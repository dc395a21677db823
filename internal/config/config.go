package config

import (
	"os"
	"strconv"
)

const (
	DriverJSONFile = "jsonfile"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	ServerPort    string
	StorageDriver string
	DataDir       string
	SQLitePath    string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	JWTSecret     string
	AuthRequired  bool
	CORSOrigin    string
}

func Load() *Config {
	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		StorageDriver: getEnv("STORAGE_DRIVER", DriverJSONFile),
		DataDir:       getEnv("DATA_DIR", "./data"),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/twitter.db"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "twitter"),
		DBPassword:    getEnv("DB_PASSWORD", "twitter_dev_password"),
		DBName:        getEnv("DB_NAME", "twitter"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
		AuthRequired:  getEnvBool("AUTH_REQUIRED", false),
		CORSOrigin:    getEnv("CORS_ORIGIN", "*"),
	}
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}
