package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	AppPort   string // HTTP listen port
	StorePath string // Path of the local sqlite store file
	JWTSecret string // JWT signing secret
	RedisAddr string // Redis server address
	RedisPass string // Redis password
	RedisDB   int    // Redis database number
	AdminUser string // Seeded administrator account name
	AdminPass string // Seeded administrator password
	IsProd    bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	cfg := &Config{
		AppPort:   os.Getenv("APP_PORT"),
		StorePath: os.Getenv("STORE_PATH"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisPass: os.Getenv("REDIS_PASS"),
		RedisDB:   redisDB,
		AdminUser: os.Getenv("ADMIN_USER"),
		AdminPass: os.Getenv("ADMIN_PASS"),
		IsProd:    os.Getenv("IS_PROD") == "true",
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.StorePath == "" {
		cfg.StorePath = "bokogaming.db"
	}
	return cfg
}
