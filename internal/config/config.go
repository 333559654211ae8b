package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string
	GRPCPort string

	LCServerURL  string
	JudgeTimeout time.Duration

	AIAPIKey  string
	AIBaseURL string
	AIModel   string
	AITimeout time.Duration

	SessionTimeout     time.Duration
	DifficultyCacheTTL time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers        []string
	SolutionEventsTopic string

	JWTSecretKey string
	// AdminIDs are granted admin rights at startup so a fresh database has
	// someone who can use the admin routes.
	AdminIDs []string
}

func ConfigInit() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	return Config{
		HTTPPort: getEnv("HTTP_PORT", "8000"),
		GRPCPort: getEnv("GRPC_PORT", "8001"),

		LCServerURL:  getEnv("LC_SERVER_URL", "http://leetcode-api:3000"),
		JudgeTimeout: getDuration("JUDGE_TIMEOUT", 10*time.Second),

		AIAPIKey:  getEnv("AI_API_KEY", ""),
		AIBaseURL: getEnv("AI_BASE_URL", ""),
		AIModel:   getEnv("AI_MODEL", ""),
		AITimeout: getDuration("AI_TIMEOUT", 20*time.Second),

		SessionTimeout:     getDuration("SESSION_TIMEOUT", 60*time.Second),
		DifficultyCacheTTL: getDuration("DIFFICULTY_CACHE_TTL", 24*time.Hour),

		DBHost:     getEnv("DB_HOST", "solution-db"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "solution_share_db"),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		KafkaBrokers:        splitList(getEnv("KAFKA_BROKERS", "")),
		SolutionEventsTopic: getEnv("SOLUTION_EVENTS_TOPIC", "solution_rendered"),

		JWTSecretKey: getEnv("JWT_SECRET", "secret"),
		AdminIDs:     splitList(getEnv("ADMIN_IDS", "")),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// MigrateURL is the DSN in the URL form golang-migrate expects.
func (c *Config) MigrateURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getDuration accepts Go durations ("90s") or a plain number of seconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Invalid duration for %s: %q, using %s", key, v, fallback)
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
