package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug                    bool          `envconfig:"debug"`
	Port                     int           `envconfig:"port" default:"8080"`
	Env                      string        `envconfig:"env" default:"dev"`
	DBDriver                 string        `envconfig:"db_driver" default:"sqlite"`
	SQLiteDSN                string        `envconfig:"sqlite_dsn" default:"file:civiceye?mode=memory&cache=shared"`
	PostgresHost             string        `envconfig:"postgres_host"`
	PostgresUser             string        `envconfig:"postgres_user"`
	PostgresDB               string        `envconfig:"postgres_db"`
	PostgresPort             int           `envconfig:"postgres_port" default:"5432"`
	PostgresPassword         string        `envconfig:"postgres_password"`
	JWTSecret                string        `envconfig:"jwt_secret"`
	TokenTTL                 time.Duration `envconfig:"token_ttl" default:"24h"`
	RedisAddr                string        `envconfig:"redis_addr"`
	RedisPassword            string        `envconfig:"redis_password"`
	RedisDB                  int           `envconfig:"redis_db"`
	SessionSlot              string        `envconfig:"session_slot" default:"civicEye_user"`
	OCREndpoint              string        `envconfig:"ocr_endpoint" default:"https://api.ocr.space/parse/image"`
	OCRApiKey                string        `envconfig:"ocr_api_key"`
	OCRLanguage              string        `envconfig:"ocr_language" default:"eng"`
	OCRTimeout               time.Duration `envconfig:"ocr_timeout" default:"30s"`
	OCRRequestsPerMinute     int           `envconfig:"ocr_requests_per_minute" default:"60"`
	StorageDriver            string        `envconfig:"storage_driver" default:"disk"`
	MediaDir                 string        `envconfig:"media_dir" default:"./media"`
	MediaBaseURL             string        `envconfig:"media_base_url" default:"/media"`
	AWSRegion                string        `envconfig:"aws_region"`
	AWSBucket                string        `envconfig:"aws_bucket"`
	AWSAccessKeyID           string        `envconfig:"aws_access_key_id"`
	AWSSecretAccessKey       string        `envconfig:"aws_secret_access_key"`
	MailgunApiKey            string        `envconfig:"mg_public_api_key"`
	MgDomain                 string        `envconfig:"mg_domain"`
	MgEmailFrom              string        `envconfig:"email_from" default:"CivicEye <no-reply@civiceye.app>"`
	FirebaseCredentialsFile  string        `envconfig:"firebase_credentials_file"`
	LogLevel                 string        `envconfig:"log_level" default:"info"`
	LogPath                  string        `envconfig:"log_path"`
	LogMaxSizeMB             int           `envconfig:"log_max_size_mb" default:"100"`
	LogMaxBackups            int           `envconfig:"log_max_backups" default:"3"`
	LogMaxAgeDays            int           `envconfig:"log_max_age_days" default:"7"`
	LogCompress              bool          `envconfig:"log_compress"`
	AccessControlAllowOrigin string        `envconfig:"access_control_allow_origin"`
	ReportsPerHour           int           `envconfig:"reports_per_hour" default:"20"`
	PlaceholderImageURL      string        `envconfig:"placeholder_image_url" default:"https://picsum.photos/800/600"`
}

// ErrMissingJWTSecret is returned by Load when no token signing secret is configured.
var ErrMissingJWTSecret = errors.New("CIVICEYE_JWT_SECRET must be set")

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("civiceye", c)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return nil, ErrMissingJWTSecret
	}
	return c, nil
}

// UsesPostgres reports whether the postgres dialect was selected.
func (c *Config) UsesPostgres() bool {
	return c.DBDriver == "postgres"
}
