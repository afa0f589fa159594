package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port        string `mapstructure:"port"`
		MetricsPort string `mapstructure:"metrics_port"`
		TempDir     string `mapstructure:"temp_dir"`
	} `mapstructure:"server"`
	Directory struct {
		Mirrors        []string `mapstructure:"mirrors"`
		Preferred      string   `mapstructure:"preferred"`
		TimeoutSeconds int      `mapstructure:"timeout_seconds"`
		UserAgent      string   `mapstructure:"user_agent"`
		CountryLimit   int      `mapstructure:"country_limit"`
		SearchLimit    int      `mapstructure:"search_limit"`
	} `mapstructure:"directory"`
	Assistant struct {
		APIKey  string `mapstructure:"api_key"`
		Model   string `mapstructure:"model"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"assistant"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Storage struct {
		Provider  string `mapstructure:"provider"` // "local" or "s3"
		LocalRoot string `mapstructure:"local_root"`
		KeyID     string `mapstructure:"key_id"`
		AppKey    string `mapstructure:"app_key"`
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		Bucket    string `mapstructure:"bucket"`
	} `mapstructure:"storage"`
	Auth struct {
		JWTSecret string `mapstructure:"jwt_secret"`
	} `mapstructure:"auth"`
	Geometry struct {
		PrimaryURL  string `mapstructure:"primary_url"`
		FallbackURL string `mapstructure:"fallback_url"`
	} `mapstructure:"geometry"`
}

func Load() *Config {
	viper.SetEnvPrefix("ORBIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Register keys
	viper.BindEnv("server.port")
	viper.BindEnv("server.metrics_port")
	viper.BindEnv("server.temp_dir")

	viper.BindEnv("directory.preferred")
	viper.BindEnv("directory.timeout_seconds")
	viper.BindEnv("directory.user_agent")
	viper.BindEnv("directory.country_limit")
	viper.BindEnv("directory.search_limit")

	viper.BindEnv("assistant.api_key")
	viper.BindEnv("assistant.model")
	viper.BindEnv("assistant.base_url")

	viper.BindEnv("database.path")

	viper.BindEnv("storage.provider")
	viper.BindEnv("storage.local_root")
	viper.BindEnv("storage.key_id")
	viper.BindEnv("storage.app_key")
	viper.BindEnv("storage.endpoint")
	viper.BindEnv("storage.region")
	viper.BindEnv("storage.bucket")

	viper.BindEnv("auth.jwt_secret")

	viper.BindEnv("geometry.primary_url")
	viper.BindEnv("geometry.fallback_url")

	// Defaults
	viper.SetDefault("server.port", ":8081")
	viper.SetDefault("server.metrics_port", ":9091")
	viper.SetDefault("server.temp_dir", "/tmp/")

	// Any mirror serves the same logical dataset; the preferred host is
	// the project's round-robin alias that resolves to a healthy one.
	viper.SetDefault("directory.mirrors", []string{
		"https://de1.api.radio-browser.info/json",
		"https://at1.api.radio-browser.info/json",
		"https://nl1.api.radio-browser.info/json",
		"https://all.api.radio-browser.info/json",
	})
	viper.SetDefault("directory.preferred", "https://all.api.radio-browser.info/json")
	viper.SetDefault("directory.timeout_seconds", 10)
	viper.SetDefault("directory.user_agent", "RadioOrbit/2.7")
	viper.SetDefault("directory.country_limit", 1000)
	viper.SetDefault("directory.search_limit", 500)

	viper.SetDefault("assistant.model", "gemini-3-flash-preview")
	viper.SetDefault("assistant.base_url", "https://generativelanguage.googleapis.com/v1beta")

	viper.SetDefault("database.path", "./orbit.db")

	viper.SetDefault("storage.provider", "local")
	viper.SetDefault("storage.local_root", "./data")
	viper.SetDefault("storage.bucket", "recordings")

	viper.SetDefault("auth.jwt_secret", "super-secret-orbit-key-change-me")

	viper.SetDefault("geometry.primary_url", "https://unpkg.com/world-atlas@2/countries-110m.json")
	viper.SetDefault("geometry.fallback_url", "https://raw.githubusercontent.com/vasturiano/react-globe.gl/master/example/datasets/ne_110m_admin_0_countries.geojson")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Config error: %s", err)
		} else {
			log.Println("Info: config.yaml not found, using Environment Variables only.")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	if cfg.Assistant.APIKey == "" {
		log.Println("Warning: Assistant API key is missing (ORBIT_ASSISTANT_API_KEY); chat will answer with the fallback message.")
	}

	return &cfg
}
