package utils

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// lookupEnv treats a blank variable the same as an unset one.
func lookupEnv(key string) (string, bool) {
	value, exists := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	return value, exists && value != ""
}

func GetEnvString(key, defaultValue string) string {
	if value, ok := lookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	value, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error parsing %s as int: %v, will use default value %d", key, err, defaultValue)
		return defaultValue
	}
	return parsed
}

func GetEnvBool(key string, defaultValue bool) bool {
	value, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error parsing %s as bool: %v, will use default value %t", key, err, defaultValue)
		return defaultValue
	}
	return parsed
}

func GetEnvFloat(key string, defaultValue float64) float64 {
	value, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Error parsing %s as float: %v, will use default value %g", key, err, defaultValue)
		return defaultValue
	}
	return parsed
}

// GetEnvStringSlice splits a comma separated variable and drops empty items.
func GetEnvStringSlice(key string, defaultValue []string) []string {
	value, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
