package twitter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything a scraping run needs. Secrets are never read from
// the YAML file; they come from the environment, the OS keyring or a prompt.
type Config struct {
	Account   AccountConfig `yaml:"account"`
	Browser   BrowserConfig `yaml:"browser"`
	Files     FilesConfig   `yaml:"files"`
	Logging   LoggingConfig `yaml:"logging"`
	Selectors Selectors     `yaml:"selectors"`
}

// AccountConfig identifies the account the scraper logs in as.
type AccountConfig struct {
	Username   string `yaml:"username"`
	Password   string `yaml:"-"`
	TOTPSecret string `yaml:"-"`
}

// BrowserConfig controls the Chrome instance.
type BrowserConfig struct {
	BaseURL        string        `yaml:"base_url" validate:"required,url"`
	Bin            string        `yaml:"bin"`
	Headless       bool          `yaml:"headless"`
	BlockResources bool          `yaml:"block_resources"`
	Proxy          string        `yaml:"proxy" validate:"omitempty,url"`
	WaitTimeout    time.Duration `yaml:"wait_timeout" validate:"gt=0"`
	// Cookies is where the session is saved after login and restored from
	// on the next run. Empty disables session reuse.
	Cookies string `yaml:"cookies"`
}

// FilesConfig names the input and output files.
type FilesConfig struct {
	Usernames string `yaml:"usernames" validate:"required"`
	Profiles  string `yaml:"profiles" validate:"required"`
	Tweets    string `yaml:"tweets" validate:"required"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			BaseURL:        defaultBaseURL,
			Headless:       true,
			BlockResources: true,
			WaitTimeout:    defaultWaitTimeout,
		},
		Files: FilesConfig{
			Usernames: "usernames.txt",
			Profiles:  "twitter_profiles.json",
			Tweets:    "tweets_live.json",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Selectors: DefaultSelectors(),
	}
}

// Load builds the configuration from, in increasing precedence: defaults,
// the YAML file, a .env file, the environment and the overrides. The result
// is validated.
func Load(path string, overrides ...func(*Config)) (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := DefaultConfig()
	if err := cfg.LoadFromFile(path); err != nil {
		return nil, err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile merges a YAML file into c. An empty path searches the
// default locations; finding nothing there is not an error.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func findConfigFile() string {
	locations := []string{"twitter.yaml", "twitter.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations,
			filepath.Join(home, ".config", "twitter-gofun", "config.yaml"),
			filepath.Join(home, ".config", "twitter-gofun", "config.yml"),
		)
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

// LoadFromEnv applies TWITTER_* environment variables.
func (c *Config) LoadFromEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("TWITTER_USERNAME", &c.Account.Username)
	setString("TWITTER_PASSWORD", &c.Account.Password)
	setString("TWITTER_TOTP_SECRET", &c.Account.TOTPSecret)
	setString("TWITTER_BASE_URL", &c.Browser.BaseURL)
	setString("TWITTER_BROWSER_BIN", &c.Browser.Bin)
	setString("TWITTER_PROXY", &c.Browser.Proxy)
	setString("TWITTER_COOKIES", &c.Browser.Cookies)
	setString("TWITTER_LOG_LEVEL", &c.Logging.Level)
	setString("TWITTER_LOG_FILE", &c.Logging.File)

	var errs []error
	if v := os.Getenv("TWITTER_HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("TWITTER_HEADLESS: %w", err))
		} else {
			c.Browser.Headless = b
		}
	}
	if v := os.Getenv("TWITTER_WAIT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("TWITTER_WAIT_TIMEOUT: %w", err))
		} else {
			c.Browser.WaitTimeout = d
		}
	}
	return errors.Join(errs...)
}

// Validate checks the configuration's struct constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
