package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`
	Database DatabaseConfig `mapstructure:"database"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Location LocationConfig `mapstructure:"location"`
	Refresh  RefreshConfig  `mapstructure:"refresh"`
	Search   SearchConfig   `mapstructure:"search"`
}

type APIConfig struct {
	Port    int  `mapstructure:"port"`
	Enabled bool `mapstructure:"enabled"`
}

type MQTTConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Broker      string `mapstructure:"broker"`
	TopicPrefix string `mapstructure:"topic_prefix"`
	ClientID    string `mapstructure:"client_id"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
}

type DatabaseConfig struct {
	Path      string        `mapstructure:"path"`
	Retention time.Duration `mapstructure:"retention"`
}

// UpstreamConfig holds the Open-Meteo endpoint bases. Configurable so tests
// and self-hosted mirrors can point elsewhere.
type UpstreamConfig struct {
	ForecastURL   string        `mapstructure:"forecast_url"`
	AirQualityURL string        `mapstructure:"air_quality_url"`
	GeocodingURL  string        `mapstructure:"geocoding_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	ForecastDays  int           `mapstructure:"forecast_days"`
}

// LocationConfig is the fallback location used until a city has been
// selected and stored.
type LocationConfig struct {
	Name      string  `mapstructure:"name"`
	Country   string  `mapstructure:"country"`
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
}

type RefreshConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Debounce time.Duration `mapstructure:"debounce"`
	Enabled  bool          `mapstructure:"enabled"`
}

type SearchConfig struct {
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	Burst         int     `mapstructure:"burst"`
	MaxResults    int     `mapstructure:"max_results"`
}

func Load(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/skycast")
	}

	// Set defaults
	viper.SetDefault("api.port", 8046)
	viper.SetDefault("api.enabled", true)
	viper.SetDefault("mqtt.enabled", false)
	viper.SetDefault("mqtt.broker", "tcp://localhost:1883")
	viper.SetDefault("mqtt.topic_prefix", "skycast")
	viper.SetDefault("mqtt.client_id", "skycast")
	viper.SetDefault("database.path", "./skycast.db")
	viper.SetDefault("database.retention", "168h")
	viper.SetDefault("upstream.forecast_url", "https://api.open-meteo.com/v1/forecast")
	viper.SetDefault("upstream.air_quality_url", "https://air-quality-api.open-meteo.com/v1/air-quality")
	viper.SetDefault("upstream.geocoding_url", "https://geocoding-api.open-meteo.com/v1/search")
	viper.SetDefault("upstream.timeout", "10s")
	viper.SetDefault("upstream.forecast_days", 7)
	viper.SetDefault("location.name", "Montreal")
	viper.SetDefault("location.country", "Canada")
	viper.SetDefault("location.latitude", 45.50884)
	viper.SetDefault("location.longitude", -73.58781)
	viper.SetDefault("refresh.interval", "30m")
	viper.SetDefault("refresh.debounce", "500ms")
	viper.SetDefault("refresh.enabled", true)
	viper.SetDefault("search.rate_per_second", 2)
	viper.SetDefault("search.burst", 3)
	viper.SetDefault("search.max_results", 10)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
