package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Payment  PaymentConfig  `mapstructure:"payment" validate:"required"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig contains the MongoDB connection settings.
type DatabaseConfig struct {
	URI  string `mapstructure:"uri" validate:"required,mongouri"`
	Name string `mapstructure:"name" validate:"required"`
	// UseTransactions wraps multi-document writes in a session transaction.
	// Requires a replica set or sharded cluster.
	UseTransactions bool `mapstructure:"use_transactions"`
	TimeoutSeconds  int  `mapstructure:"timeout_seconds" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	// StrictRoles puts role guards in front of user management and class creation.
	StrictRoles bool `mapstructure:"strict_roles"`
}

// PaymentConfig contains the payment processor settings.
type PaymentConfig struct {
	StripeSecretKey string `mapstructure:"stripe_secret_key" validate:"required"`
	Currency        string `mapstructure:"currency" validate:"required,len=3"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
