package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// - empty default: optional integrations (Redis, AMQP, Twilio, ...) stay disabled until set
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	CORS       CORSConfig
	Log        LogConfig
	JWT        JWTConfig
	Booking    BookingConfig
	Recurrence RecurrenceConfig
	Alert      AlertConfig
	Worker     WorkerConfig
	Redis      RedisConfig
	SMTP       SMTPConfig
	Twilio     TwilioConfig
	Push       PushConfig
	AMQP       AMQPConfig
	Tracing    TracingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

type BookingConfig struct {
	MinDuration time.Duration `envconfig:"BOOKING_MIN_DURATION" default:"15m"`
	MaxDuration time.Duration `envconfig:"BOOKING_MAX_DURATION" default:"8h"`
	TimeZone    string        `envconfig:"BOOKING_TIMEZONE" default:"Asia/Tokyo"`
}

type RecurrenceConfig struct {
	GenerationHorizon  time.Duration `envconfig:"RECURRENCE_GENERATION_HORIZON" default:"720h"`
	GenerationInterval time.Duration `envconfig:"RECURRENCE_GENERATION_INTERVAL" default:"1h"`
	Concurrency        int           `envconfig:"RECURRENCE_CONCURRENCY" default:"4"`
}

type AlertConfig struct {
	MaxAttempts      int           `envconfig:"ALERT_MAX_ATTEMPTS" default:"3"`
	SendTimeout      time.Duration `envconfig:"ALERT_SEND_TIMEOUT" default:"10s"`
	DispatchInterval time.Duration `envconfig:"ALERT_DISPATCH_INTERVAL" default:"30s"`
	BatchSize        int           `envconfig:"ALERT_BATCH_SIZE" default:"100"`
	Concurrency      int           `envconfig:"ALERT_CONCURRENCY" default:"8"`
	Channels         []string      `envconfig:"ALERT_CHANNELS" default:"EMAIL"`
	Reminders        []string      `envconfig:"ALERT_REMINDERS" default:"REMINDER_24H,REMINDER_2H,REMINDER_30M"`
	AdminRecipient   string        `envconfig:"ALERT_ADMIN_RECIPIENT" default:"facility-admin@example.com"`
	Retention        time.Duration `envconfig:"ALERT_RETENTION" default:"720h"`
	PurgeInterval    time.Duration `envconfig:"ALERT_PURGE_INTERVAL" default:"24h"`
	DryRun           bool          `envconfig:"ALERT_DRY_RUN" default:"false"`
}

type WorkerConfig struct {
	Enabled  bool          `envconfig:"WORKER_ENABLED" default:"true"`
	LeaseTTL time.Duration `envconfig:"WORKER_LEASE_TTL" default:"5m"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:""`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST" default:""`
	Port     string `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME" default:""`
	Password string `envconfig:"SMTP_PASSWORD" default:""`
	From     string `envconfig:"SMTP_FROM" default:"no-reply@example.com"`
}

type TwilioConfig struct {
	AccountSID string `envconfig:"TWILIO_ACCOUNT_SID" default:""`
	AuthToken  string `envconfig:"TWILIO_AUTH_TOKEN" default:""`
	From       string `envconfig:"TWILIO_FROM" default:""`
}

type PushConfig struct {
	Enabled bool   `envconfig:"PUSH_ENABLED" default:"false"`
	Region  string `envconfig:"PUSH_AWS_REGION" default:"ap-northeast-1"`
}

type AMQPConfig struct {
	URL           string        `envconfig:"AMQP_URL" default:""`
	Exchange      string        `envconfig:"AMQP_EXCHANGE" default:"booking.events"`
	RelayInterval time.Duration `envconfig:"AMQP_RELAY_INTERVAL" default:"10s"`
	BatchSize     int           `envconfig:"AMQP_RELAY_BATCH_SIZE" default:"100"`
}

type TracingConfig struct {
	Enabled     bool   `envconfig:"TRACING_ENABLED" default:"false"`
	ServiceName string `envconfig:"TRACING_SERVICE_NAME" default:"facility-booking"`
	DaemonAddr  string `envconfig:"TRACING_DAEMON_ADDR" default:"127.0.0.1:2000"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// Location resolves the zone used to turn recurrence dates into instants.
func (c BookingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already present in the environment win over the file.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Booking.MinDuration <= 0 || c.Booking.MaxDuration < c.Booking.MinDuration {
		return fmt.Errorf("invalid booking duration bounds: min=%s max=%s", c.Booking.MinDuration, c.Booking.MaxDuration)
	}
	if c.Alert.MaxAttempts < 1 {
		return fmt.Errorf("ALERT_MAX_ATTEMPTS must be at least 1, got %d", c.Alert.MaxAttempts)
	}
	if c.Alert.SendTimeout <= 0 {
		return fmt.Errorf("ALERT_SEND_TIMEOUT must be positive, got %s", c.Alert.SendTimeout)
	}
	if c.Alert.Concurrency < 1 || c.Recurrence.Concurrency < 1 {
		return fmt.Errorf("concurrency settings must be positive")
	}
	if _, err := c.Booking.Location(); err != nil {
		return err
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
			MaxConns: 5,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Booking: BookingConfig{
			MinDuration: 15 * time.Minute,
			MaxDuration: 8 * time.Hour,
			TimeZone:    "Asia/Tokyo",
		},
		Recurrence: RecurrenceConfig{
			GenerationHorizon:  30 * 24 * time.Hour,
			GenerationInterval: time.Hour,
			Concurrency:        2,
		},
		Alert: AlertConfig{
			MaxAttempts:      3,
			SendTimeout:      time.Second,
			DispatchInterval: time.Second,
			BatchSize:        50,
			Concurrency:      4,
			Channels:         []string{"EMAIL"},
			Reminders:        []string{"REMINDER_24H", "REMINDER_2H", "REMINDER_30M"},
			AdminRecipient:   "facility-admin@example.com",
			Retention:        24 * time.Hour,
			PurgeInterval:    time.Hour,
			DryRun:           true,
		},
		Worker: WorkerConfig{
			Enabled:  false,
			LeaseTTL: time.Minute,
		},
		AMQP: AMQPConfig{
			Exchange:      "booking.events",
			RelayInterval: time.Second,
			BatchSize:     50,
		},
		Tracing: TracingConfig{
			ServiceName: "facility-booking-test",
		},
	}
}
