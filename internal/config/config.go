// Package config provides types for handling configuration parameters.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Short code generation strategies.
const (
	StrategyRandom  = "random"
	StrategyHashIDs = "hashids"
)

// MaxCodeLength bounds the length of short codes, longer codes are never resolved.
const MaxCodeLength = 64

// Config handles server-related constants and parameters.
type Config struct {
	ServerAddress   string        `env:"SERVER_ADDRESS" json:"server_address" env-default:":8080"`
	ShortLinkDomain string        `env:"SHORT_LINK_DOMAIN" json:"short_link_domain" env-default:"localhost:8080"`
	MainSiteURL     string        `env:"MAIN_SITE_URL" json:"main_site_url" env-default:"http://localhost:3000"`
	FallbackURL     string        `env:"FALLBACK_URL" json:"fallback_url"`
	DatabaseDSN     string        `env:"STORE_CONNECTION" json:"store_connection"`
	StoreTable      string        `env:"STORE_TABLE" json:"store_table" env-default:"short_links"`
	FileStoragePath string        `env:"FILE_STORAGE_PATH" json:"file_storage_path"`
	RedisAddress    string        `env:"REDIS_ADDRESS" json:"redis_address"`
	RedisPassword   string        `env:"REDIS_PASSWORD" json:"redis_password"`
	CacheTTL        time.Duration `env:"CACHE_TTL" json:"cache_ttl" env-default:"15m"`
	AMQPURL         string        `env:"AMQP_URL" json:"amqp_url"`
	ClickQueue      string        `env:"CLICK_QUEUE" json:"click_queue" env-default:"paste_clicks"`
	ConsumerWorkers int           `env:"CONSUMER_WORKERS" json:"consumer_workers" env-default:"4"`
	CodeStrategy    string        `env:"CODE_STRATEGY" json:"code_strategy" env-default:"random"`
	CodeLength      int           `env:"CODE_LENGTH" json:"code_length" env-default:"6"`
	HashSalt        string        `env:"HASH_SALT" json:"hash_salt" env-default:"paste short link salt"`
	StoreTimeout    time.Duration `env:"STORE_TIMEOUT" json:"store_timeout" env-default:"500ms"`
	ClickTimeout    time.Duration `env:"CLICK_TIMEOUT" json:"click_timeout" env-default:"2s"`
	EnableHTTPS     bool          `env:"ENABLE_HTTPS" json:"enable_https"`
	TrustedSubnet   string        `env:"TRUSTED_SUBNET" json:"trusted_subnet"`
	LogLevel        string        `env:"LOG_LEVEL" json:"log_level" env-default:"info"`
	LogFile         string        `env:"LOG_FILE" json:"log_file"`
	ConfigPath      string        `env:"CONFIG" json:"-"`
}

// NewDefaultConfiguration sets up a configuration from defaults and environment variables.
func NewDefaultConfiguration() (*Config, error) {
	cfg := Config{}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// flagValues keeps command line values apart so that only explicitly passed flags override the configuration.
type flagValues struct {
	a, s, m, b, d, f, r, q, c string
	t                         bool
}

// Parse applies a JSON configuration file and command line arguments on top of the environment.
// Precedence: flags, then environment, then the JSON file, then defaults.
func (c *Config) Parse() error {
	return c.parseArgs(os.Args[1:])
}

func (c *Config) parseArgs(args []string) error {
	fs := flag.NewFlagSet("shortlinker", flag.ContinueOnError)
	var fv flagValues
	fs.StringVar(&fv.a, "a", "", "Server address")
	fs.StringVar(&fv.s, "s", "", "Short link domain")
	fs.StringVar(&fv.m, "m", "", "Main site URL")
	fs.StringVar(&fv.b, "b", "", "Fallback URL")
	fs.StringVar(&fv.d, "d", "", "Postgres DSN")
	fs.StringVar(&fv.f, "f", "", "File storage path")
	fs.StringVar(&fv.r, "r", "", "Redis address")
	fs.StringVar(&fv.q, "q", "", "AMQP URL")
	fs.StringVar(&fv.c, "c", "", "JSON configuration file path")
	fs.BoolVar(&fv.t, "t", false, "Enable HTTPS")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.assignValues(fs, fv)
}

func (c *Config) assignValues(fs *flag.FlagSet, fv flagValues) error {
	path := c.ConfigPath
	if fv.c != "" {
		path = fv.c
	}
	if path != "" {
		// ReadConfig reads the file first and then re-applies the environment on top of it
		if err := cleanenv.ReadConfig(path, c); err != nil {
			return err
		}
		c.ConfigPath = path
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	overrides := []struct {
		name  string
		value string
		dst   *string
	}{
		{"a", fv.a, &c.ServerAddress},
		{"s", fv.s, &c.ShortLinkDomain},
		{"m", fv.m, &c.MainSiteURL},
		{"b", fv.b, &c.FallbackURL},
		{"d", fv.d, &c.DatabaseDSN},
		{"f", fv.f, &c.FileStoragePath},
		{"r", fv.r, &c.RedisAddress},
		{"q", fv.q, &c.AMQPURL},
	}
	for _, o := range overrides {
		if set[o.name] {
			*o.dst = o.value
		}
	}
	if set["t"] {
		c.EnableHTTPS = fv.t
	}
	return c.Validate()
}

// Validate checks the parameters business logic relies on and fills derived defaults.
func (c *Config) Validate() error {
	if !isAbsoluteURL(c.MainSiteURL) {
		return fmt.Errorf("main site URL %q is not an absolute URL", c.MainSiteURL)
	}
	c.MainSiteURL = strings.TrimRight(c.MainSiteURL, "/")
	if c.FallbackURL == "" {
		c.FallbackURL = c.MainSiteURL
	}
	if !isAbsoluteURL(c.FallbackURL) {
		return fmt.Errorf("fallback URL %q is not an absolute URL", c.FallbackURL)
	}
	if c.ShortLinkDomain == "" {
		return errors.New("short link domain is empty")
	}
	if c.CodeStrategy != StrategyRandom && c.CodeStrategy != StrategyHashIDs {
		return fmt.Errorf("unknown code strategy %q", c.CodeStrategy)
	}
	if c.CodeLength <= 0 || c.CodeLength > MaxCodeLength {
		return fmt.Errorf("code length must be within 1..%d, got %d", MaxCodeLength, c.CodeLength)
	}
	if c.ConsumerWorkers <= 0 {
		c.ConsumerWorkers = 1
	}
	return nil
}

// ShortDomainHost returns the short link domain without scheme and trailing slash.
func (c *Config) ShortDomainHost() string {
	host := c.ShortLinkDomain
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	return strings.TrimRight(host, "/")
}

// ShortBaseURL returns the prefix short codes are appended to.
// The scheme configured with the short link domain is kept, https is assumed otherwise.
func (c *Config) ShortBaseURL() string {
	domain := strings.TrimRight(c.ShortLinkDomain, "/")
	if strings.Contains(domain, "://") {
		return domain
	}
	return "https://" + domain
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
