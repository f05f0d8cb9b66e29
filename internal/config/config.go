package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Files    FilesConfig    `mapstructure:"files"    validate:"required"`
	Sweep    SweepConfig    `mapstructure:"sweep"    validate:"required"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// FilesConfig locates the directory where uploaded report files are kept.
// Only the path reference goes to the database; content stays on disk.
type FilesConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// SweepConfig controls the scheduled deadline sweep.
// Schedule is a standard cron expression.
type SweepConfig struct {
	Schedule string `mapstructure:"schedule" validate:"required"`
}
