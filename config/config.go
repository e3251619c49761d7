package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings for the toolkit.
type Config struct {
	HTTP    HTTPConfig
	Scanner ScannerConfig
	Phone   PhoneConfig
	Logging LoggingConfig
	Output  OutputConfig
}

// HTTPConfig controls the shared HTTP client used by the lookup tools.
type HTTPConfig struct {
	Timeout   time.Duration
	Retries   int
	UserAgent string
}

// ScannerConfig controls the port scanner engine defaults.
type ScannerConfig struct {
	Timeout time.Duration
	Workers int
}

// PhoneConfig controls phone-number parsing.
type PhoneConfig struct {
	DefaultRegion string
}

// LoggingConfig controls the logrus logger.
type LoggingConfig struct {
	Level string
}

// OutputConfig controls where saved reports go.
type OutputConfig struct {
	ResultsDir string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", "10s")
	v.SetDefault("http.retries", 3)
	v.SetDefault("http.user_agent", "Mozilla/5.0 (compatible; nexrecon)")
	v.SetDefault("scanner.timeout", "1s")
	v.SetDefault("scanner.workers", 50)
	v.SetDefault("phone.default_region", "ID")
	v.SetDefault("logging.level", "warn")
	v.SetDefault("output.results_dir", "result")
}

// Load reads config.yaml from ./configs or the working directory, applies
// environment overrides (NEXRECON_HTTP_TIMEOUT etc.) and returns the resulting
// Config. A missing config file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.SetEnvPrefix("nexrecon")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Timeout:   v.GetDuration("http.timeout"),
			Retries:   v.GetInt("http.retries"),
			UserAgent: v.GetString("http.user_agent"),
		},
		Scanner: ScannerConfig{
			Timeout: v.GetDuration("scanner.timeout"),
			Workers: v.GetInt("scanner.workers"),
		},
		Phone: PhoneConfig{
			DefaultRegion: v.GetString("phone.default_region"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("logging.level"),
		},
		Output: OutputConfig{
			ResultsDir: v.GetString("output.results_dir"),
		},
	}
	return cfg, nil
}
