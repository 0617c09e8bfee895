package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server Server
	Feed   Feed
	Cart   Cart
	Redis  Redis
	DB     DB
	Auth   Auth
	CORS   CORS
}

type Server struct {
	Port        string
	GinMode     string
	Environment string
}

type Feed struct {
	// Endpoint is the upstream product API returning either a JSON
	// list or a paginated {"results": [...]} envelope.
	Endpoint string
	// RefreshCron is a cron expression for periodic catalog reloads.
	// Empty disables the scheduler.
	RefreshCron string
}

// Cart selects the persistence backend for the cart slot.
type Cart struct {
	Store    string // file, redis, postgres
	Slot     string
	FilePath string
}

type Redis struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type DB struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Auth struct {
	JWTSecret     string
	SessionExpiry time.Duration
	// Demo login credentials: a single email plus a bcrypt hash.
	DemoEmail        string
	DemoPasswordHash string
}

type CORS struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: Server{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Feed: Feed{
			Endpoint:    getEnv("FEED_ENDPOINT", "http://localhost:8000/api/products/?format=json"),
			RefreshCron: getEnv("FEED_REFRESH_CRON", ""),
		},
		Cart: Cart{
			Store:    getEnv("CART_STORE", "file"),
			Slot:     getEnv("CART_SLOT", "cart_items_v1"),
			FilePath: getEnv("CART_FILE_PATH", "data/cart_items_v1.json"),
		},
		Redis: Redis{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		},
		DB: DB{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "tienda"),
			Password: getEnv("DB_PASSWORD", "tienda"),
			DBName:   getEnv("DB_NAME", "tienda"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Auth: Auth{
			JWTSecret:        getEnv("JWT_SECRET", "your-secret-key"),
			SessionExpiry:    parseDuration(getEnv("JWT_SESSION_EXPIRY", "30m")),
			DemoEmail:        getEnv("DEMO_USER_EMAIL", "demo@tienda.mx"),
			DemoPasswordHash: getEnv("DEMO_PASSWORD_HASH", ""),
		},
		CORS: CORS{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
	}

	return config, nil
}

// DSN builds the postgres connection string for the gorm cart store.
func (c *DB) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Addr returns host:port for the redis client.
func (c *Redis) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default 30m", s)
		return 30 * time.Minute
	}
	return duration
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for i := 0; i < len(s); {
		end := i
		for end < len(s) && s[end] != ',' {
			end++
		}
		result = append(result, s[i:end])
		i = end + 1
	}
	return result
}
