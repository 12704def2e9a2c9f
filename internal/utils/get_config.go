package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort string `yaml:"APP_PORT"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Redis (pending cooking sessions)
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`

	// Cooking session lifetime, e.g. "30m"
	CookingSessionTTL string `yaml:"COOKING_SESSION_TTL"`

	// Recipe generation (OpenAI-compatible chat completions)
	OpenAIBaseURL string `yaml:"OPENAI_BASE_URL"`
	OpenAIAPIKey  string `yaml:"OPENAI_API_KEY"`
	OpenAIModel   string `yaml:"OPENAI_MODEL"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	// Set environment variables for keys that should be accessible via os.Getenv
	os.Setenv("JWT_SECRET", config.JWTSecret)
	os.Setenv("OPENAI_API_KEY", config.OpenAIAPIKey)
}

func GetConfig(key string) string {
	value := ""
	switch key {
	case "APP_PORT":
		value = config.AppPort
	case "DB_USER":
		value = config.DBUser
	case "DB_NAME":
		value = config.DBName
	case "DB_PASSWORD":
		value = config.DBPassword
	case "DB_PORT":
		value = config.DBPort
	case "DB_HOST":
		value = config.DBHost
	case "JWT_SECRET":
		value = config.JWTSecret
	case "REDIS_ADDR":
		value = config.RedisAddr
	case "REDIS_PASSWORD":
		value = config.RedisPassword
	case "COOKING_SESSION_TTL":
		value = config.CookingSessionTTL
	case "OPENAI_BASE_URL":
		value = config.OpenAIBaseURL
	case "OPENAI_API_KEY":
		value = config.OpenAIAPIKey
	case "OPENAI_MODEL":
		value = config.OpenAIModel
	}
	if value == "" {
		value = os.Getenv(key)
	}
	return value
}
