package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	MongoURI     string
	Database     string
	MongoTimeout time.Duration
	HTTPAddr     string

	JWTSecret string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func FromEnv() (Config, error) {
	var c Config

	c.MongoURI = strings.TrimSpace(os.Getenv("DASHBOARD_MONGO_URI"))
	if c.MongoURI == "" {
		c.MongoURI = "mongodb://127.0.0.1:27017/kavyalok"
	}

	c.Database = strings.TrimSpace(os.Getenv("DASHBOARD_MONGO_DB"))
	if c.Database == "" {
		c.Database = "kavyalok"
	}

	c.MongoTimeout = 10 * time.Second
	if raw := strings.TrimSpace(os.Getenv("DASHBOARD_MONGO_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return c, fmt.Errorf("DASHBOARD_MONGO_TIMEOUT: %w", err)
		}
		c.MongoTimeout = d
	}

	c.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":3000"
	}

	c.JWTSecret = strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if c.JWTSecret == "" {
		return c, fmt.Errorf("JWT_SECRET is empty")
	}

	c.CloudinaryCloudName = strings.TrimSpace(os.Getenv("CLOUDINARY_CLOUD_NAME"))
	c.CloudinaryAPIKey = strings.TrimSpace(os.Getenv("CLOUDINARY_API_KEY"))
	c.CloudinaryAPISecret = strings.TrimSpace(os.Getenv("CLOUDINARY_API_SECRET"))
	if c.CloudinaryCloudName == "" {
		return c, fmt.Errorf("CLOUDINARY_CLOUD_NAME is empty")
	}
	if c.CloudinaryAPIKey == "" {
		return c, fmt.Errorf("CLOUDINARY_API_KEY is empty")
	}
	if c.CloudinaryAPISecret == "" {
		return c, fmt.Errorf("CLOUDINARY_API_SECRET is empty")
	}

	return c, nil
}
