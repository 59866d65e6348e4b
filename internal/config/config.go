package config

import "os"

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	RedisAddr   string
	ViewsDir    string
}

func Load() Config {
	return Config{
		Addr:        getEnv("ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getEnv("JWT_SECRET", "change-me"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		ViewsDir:    getEnv("VIEWS_DIR", "./views"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
