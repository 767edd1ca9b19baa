package config

import (
	"log"
	"os"
	"strconv"
)

func getFloatEnv(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid float for %s, using fallback", key)
	}
	return fallback
}

// RedisEnabled reports whether the shared cache backend was selected.
func (c *Config) RedisEnabled() bool {
	return c.CacheBackend == "redis"
}
