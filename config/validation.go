package config

import "fmt"

// ValidateConfig checks that the configuration is internally consistent
// before anything connects anywhere.
func ValidateConfig(cfg *Config) error {
	switch cfg.Environment {
	case "development", "test", "production":
	default:
		return fmt.Errorf("unknown environment: %s", cfg.Environment)
	}

	switch cfg.DBDriver {
	case "sqlite":
		if cfg.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	case "postgres":
		if cfg.DBHost == "" {
			return fmt.Errorf("DB_HOST is required for the postgres driver")
		}
		if cfg.DBUser == "" {
			return fmt.Errorf("DB_USER is required for the postgres driver")
		}
		if cfg.DBName == "" {
			return fmt.Errorf("DB_NAME is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown database driver: %s", cfg.DBDriver)
	}

	if cfg.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT must not be empty")
	}

	if cfg.S3Bucket != "" && cfg.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION is required when S3_BUCKET_NAME is set")
	}

	return nil
}
