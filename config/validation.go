package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable in the
// current environment. Production requires every sensitive value to be set
// explicitly; development and test fall back to defaults.
func ValidateConfig(cfg *Config) error {
	var errs []string

	switch cfg.StorageBackend {
	case "local":
		if cfg.UploadDir == "" {
			errs = append(errs, "UPLOAD_DIR is required for local storage")
		}
	case "s3":
		if cfg.S3Bucket == "" {
			errs = append(errs, "S3_BUCKET_NAME is required for s3 storage")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown storage backend %q", cfg.StorageBackend))
	}

	if IsProduction() {
		if cfg.DBHost == "" {
			errs = append(errs, "db_host secret is required")
		}
		if cfg.DBUser == "" {
			errs = append(errs, "db_user secret is required")
		}
		if cfg.DBPassword == "" {
			errs = append(errs, "db_password secret is required")
		}
		if cfg.DBName == "" {
			errs = append(errs, "db_name secret is required")
		}
		if cfg.JWTSecret == "" {
			errs = append(errs, "jwt_secret secret is required")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
