package utils

import (
	"errors"
	"os"
	"strconv"

	"foodgram/internal/logging"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config is read from config.yaml first, then overridden by the process environment (and .env).
type Config struct {
	// App
	AppPort              string `yaml:"APP_PORT" env:"APP_PORT"`
	AppURL               string `yaml:"APP_URL" env:"APP_URL"`
	ShoppingListFilename string `yaml:"SHOPPING_LIST_FILENAME" env:"SHOPPING_LIST_FILENAME"`
	RateLimitMax         int    `yaml:"RATE_LIMIT_MAX" env:"RATE_LIMIT_MAX"`
	LogLevel             string `yaml:"LOG_LEVEL" env:"LOG_LEVEL"`
	LogFormat            string `yaml:"LOG_FORMAT" env:"LOG_FORMAT"`

	// Database configuration
	DBUser     string `yaml:"DB_USER" env:"DB_USER"`
	DBName     string `yaml:"DB_NAME" env:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD" env:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT" env:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST" env:"DB_HOST"`
	DBTimeZone string `yaml:"DB_TIMEZONE" env:"DB_TIMEZONE"`

	// JWT
	JWTSecret     string `yaml:"JWT_SECRET" env:"JWT_SECRET"`
	JWTTTLMinutes int    `yaml:"JWT_TTL_MINUTES" env:"JWT_TTL_MINUTES"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST" env:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT" env:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME" env:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL" env:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD" env:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET" env:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION" env:"AWS_S3_REGION"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY" env:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY" env:"AWS_SECRET_KEY"`
	AWSS3Endpoint string `yaml:"AWS_S3_ENDPOINT" env:"AWS_S3_ENDPOINT"`

	// Redis
	RedisAddr     string `yaml:"REDIS_ADDR" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"REDIS_DB" env:"REDIS_DB"`

	// RabbitMQ
	RabbitMQURL   string `yaml:"RABBITMQ_URL" env:"RABBITMQ_URL"`
	RabbitMQQueue string `yaml:"RABBITMQ_QUEUE" env:"RABBITMQ_QUEUE"`
}

var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		AppPort:              "8080",
		AppURL:               "http://localhost:8080",
		ShoppingListFilename: "shopping_list.txt",
		RateLimitMax:         20,
		LogLevel:             "info",
		LogFormat:            "json",
		DBPort:               "5432",
		DBHost:               "localhost",
		DBTimeZone:           "UTC",
		JWTTTLMinutes:        60 * 24,
		SMTPPort:             "587",
		RedisAddr:            "localhost:6379",
		RabbitMQQueue:        "recipe_published",
	}
}

// LoadConfig reads config.yaml and the environment into the package config.
func LoadConfig() {
	if err := loadConfigFrom("config.yaml", &config); err != nil {
		logging.Error().Err(err).Msg("error loading configuration")
	}
}

func loadConfigFrom(path string, cfg *Config) error {
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return err
		}
	case !errors.Is(err, os.ErrNotExist):
		return err
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return err
		}
	}

	return env.Parse(cfg)
}

func GetConfig(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "SHOPPING_LIST_FILENAME":
		return config.ShoppingListFilename
	case "RATE_LIMIT_MAX":
		return strconv.Itoa(config.RateLimitMax)
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_FORMAT":
		return config.LogFormat
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_TIMEZONE":
		return config.DBTimeZone
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_TTL_MINUTES":
		return strconv.Itoa(config.JWTTTLMinutes)
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "AWS_S3_ENDPOINT":
		return config.AWSS3Endpoint
	case "REDIS_ADDR":
		return config.RedisAddr
	case "REDIS_PASSWORD":
		return config.RedisPassword
	case "REDIS_DB":
		return strconv.Itoa(config.RedisDB)
	case "RABBITMQ_URL":
		return config.RabbitMQURL
	case "RABBITMQ_QUEUE":
		return config.RabbitMQQueue
	default:
		return ""
	}
}

// GetConfigInt returns the integer value of key, or fallback when it is unset or malformed.
func GetConfigInt(key string, fallback int) int {
	v, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return fallback
	}
	return v
}
