package config

type ServiceConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	ClientURL   string `mapstructure:"client_url"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// EmailConfig configures the outgoing SMTP relay.
type EmailConfig struct {
	SMTPHost  string `mapstructure:"smtp_host"`
	SMTPPort  int    `mapstructure:"smtp_port"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	FromEmail string `mapstructure:"from_email"`
	FromName  string `mapstructure:"from_name"`
}

// StorageConfig configures the S3 bucket holding uploaded files. Endpoint
// is only set for S3-compatible stores; left empty the SDK targets AWS.
type StorageConfig struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Endpoint      string `mapstructure:"endpoint"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

// NotifyConfig tunes the deadline scan.
type NotifyConfig struct {
	// DueSoonDays is the reminder window for upcoming deadlines.
	DueSoonDays int `mapstructure:"due_soon_days"`
	// MaxConcurrent caps the email fan-out.
	MaxConcurrent int `mapstructure:"max_concurrent"`
}
