package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all the configuration for the application.
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"production"`
	HTTPServer `yaml:"http_server"`
	Database   `yaml:"database"`
	Log        `yaml:"log"`
	Tracking   `yaml:"tracking"`
	Auth       `yaml:"auth"`
	News       `yaml:"news"`
	Weather    `yaml:"weather"`
}

// HTTPServer holds HTTP listener configuration.
type HTTPServer struct {
	Address      string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	// AllowedOrigins lists CORS origins; "*" reflects any origin.
	AllowedOrigins []string `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}

// Database holds connection settings. Driver is either "postgres" or "sqlite";
// for sqlite only DSN is used.
type Database struct {
	Driver          string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	DSN             string `yaml:"dsn" env:"DB_DSN"`
	Host            string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User            string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password        string `yaml:"password" env:"DB_PASSWORD"`
	DBName          string `yaml:"dbname" env:"DB_NAME" env-default:"conteudooh"`
	SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	Timezone        string `yaml:"timezone" env:"DB_TIMEZONE" env-default:"America/Recife"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"20"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	AutoMigrate     bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
	SeedData        bool   `yaml:"seed_data" env:"DB_SEED_DATA" env-default:"false"`
}

// Log holds logger output settings. An empty File keeps logs on stderr only.
type Log struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	File       string `yaml:"file" env:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB" env-default:"100"`
	MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS" env-default:"5"`
	MaxAgeDays int    `yaml:"max_age_days" env:"LOG_MAX_AGE_DAYS" env-default:"30"`
}

// Tracking holds click attribution settings.
type Tracking struct {
	BaseURL       string        `yaml:"base_url" env:"TRACKING_BASE_URL" env-default:"http://localhost:8080"`
	GeoProvider   string        `yaml:"geo_provider" env:"GEO_PROVIDER" env-default:"ipapi"`
	GeoEndpoint   string        `yaml:"geo_endpoint" env:"GEO_ENDPOINT" env-default:"https://ipapi.co"`
	GeoTimeout    time.Duration `yaml:"geo_timeout" env:"GEO_TIMEOUT" env-default:"3s"`
	GeoIPPath     string        `yaml:"geoip_path" env:"GEOIP_PATH"`
	GeoCacheSize  int           `yaml:"geo_cache_size" env:"GEO_CACHE_SIZE" env-default:"4096"`
	GeoCacheTTL   time.Duration `yaml:"geo_cache_ttl" env:"GEO_CACHE_TTL" env-default:"6h"`
	UARegexesPath string        `yaml:"ua_regexes_path" env:"UA_REGEXES_PATH" env-default:"assets/regexes.yaml"`
}

// Auth holds admin authentication settings for the management API.
type Auth struct {
	Enabled           bool          `yaml:"enabled" env:"AUTH_ENABLED" env-default:"false"`
	AdminUser         string        `yaml:"admin_user" env:"AUTH_ADMIN_USER" env-default:"admin"`
	AdminPasswordHash string        `yaml:"admin_password_hash" env:"AUTH_ADMIN_PASSWORD_HASH"`
	JWTSecret         string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	AccessTokenTTL    time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"12h"`
	// BcryptCost is used by -hash-password and is the minimum accepted for AdminPasswordHash.
	BcryptCost int `yaml:"bcrypt_cost" env:"AUTH_BCRYPT_COST" env-default:"12"`
}

// News holds the RSS content refresh settings.
type News struct {
	Enabled         bool          `yaml:"enabled" env:"NEWS_ENABLED" env-default:"true"`
	FeedURL         string        `yaml:"feed_url" env:"NEWS_FEED_URL" env-default:"https://radiocentrocz.com.br/feed/gn"`
	RefreshInterval time.Duration `yaml:"refresh_interval" env:"NEWS_REFRESH_INTERVAL" env-default:"30m"`
	Limit           int           `yaml:"limit" env:"NEWS_LIMIT" env-default:"30"`
	Timeout         time.Duration `yaml:"timeout" env:"NEWS_TIMEOUT" env-default:"10s"`
}

// Weather holds the forecast provider settings.
type Weather struct {
	APIKey          string        `yaml:"api_key" env:"TOMORROW_API_KEY"`
	ForecastURL     string        `yaml:"forecast_url" env:"WEATHER_FORECAST_URL" env-default:"https://api.tomorrow.io/v4/weather/forecast"`
	GeocodeURL      string        `yaml:"geocode_url" env:"WEATHER_GEOCODE_URL" env-default:"https://nominatim.openstreetmap.org/search"`
	Latitude        float64       `yaml:"latitude" env:"WEATHER_LATITUDE" env-default:"-6.8889"`
	Longitude       float64       `yaml:"longitude" env:"WEATHER_LONGITUDE" env-default:"-38.5558"`
	CityName        string        `yaml:"city_name" env:"WEATHER_CITY_NAME" env-default:"Cajazeiras - PB"`
	Timeout         time.Duration `yaml:"timeout" env:"WEATHER_TIMEOUT" env-default:"10s"`
	CacheTTL        time.Duration `yaml:"cache_ttl" env:"WEATHER_CACHE_TTL" env-default:"10m"`
	GeocodeCacheTTL time.Duration `yaml:"geocode_cache_ttl" env:"WEATHER_GEOCODE_CACHE_TTL" env-default:"24h"`
}

// MustLoad loads the application configuration.
func MustLoad() *Config {
	// Try to load .env file (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	// Check if config file path is specified
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/local.yml" // default path
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

// Load reads the configuration from path, falling back to environment
// variables only when the file does not exist.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configPath, err)
		}
	} else {
		// If config file doesn't exist, use environment variables only
		log.Println("Config file not found, using environment variables only")
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read config from environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Tracking.GeoProvider {
	case "ipapi", "maxmind", "none":
	default:
		return fmt.Errorf("unsupported geo provider %q", c.Tracking.GeoProvider)
	}

	if c.Auth.Enabled && (c.Auth.JWTSecret == "" || c.Auth.AdminPasswordHash == "") {
		return fmt.Errorf("auth is enabled but jwt_secret or admin_password_hash is empty")
	}

	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth bcrypt_cost must be between 4 and 31, got %d", c.Auth.BcryptCost)
	}

	if c.News.Enabled && c.News.RefreshInterval <= 0 {
		return fmt.Errorf("news refresh_interval must be positive")
	}

	return nil
}
