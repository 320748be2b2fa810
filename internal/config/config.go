// Package config loads the CLI settings file and turns it into the values the
// library packages expect.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrchypark/shopclient"
)

// Environment variables that override the shop section.
const (
	EnvDomain    = "SHOPCLIENT_DOMAIN"
	EnvAPIKey    = "SHOPCLIENT_API_KEY"
	EnvChannelID = "SHOPCLIENT_CHANNEL_ID"
)

// Cache backends.
const (
	BackendNone     = "none"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendObjstore = "objstore"
)

// File is the YAML document read by the CLI.
type File struct {
	Shop  ShopConfig  `yaml:"shop"`
	HTTP  HTTPConfig  `yaml:"http"`
	Cache CacheConfig `yaml:"cache"`
}

// ShopConfig identifies the shop and channel. api_key may be written as a
// number in YAML.
type ShopConfig struct {
	Domain    string `yaml:"domain"`
	APIKey    string `yaml:"api_key"`
	ChannelID string `yaml:"channel_id"`
}

// HTTPConfig tunes the transport.
type HTTPConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rate_limit"`
	Burst     int           `yaml:"burst"`
}

// CacheConfig selects the response store used for ETag revalidation.
type CacheConfig struct {
	Backend  string        `yaml:"backend"`
	Capacity int64         `yaml:"capacity"`
	Addr     string        `yaml:"addr"`
	TTL      time.Duration `yaml:"ttl"`
	Dir      string        `yaml:"dir"`
}

// Default returns the settings used when no file is given.
func Default() *File {
	return &File{
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			RateLimit: 2,
			Burst:     4,
		},
		Cache: CacheConfig{
			Backend:  BackendMemory,
			Capacity: 8 << 20,
		},
	}
}

// Load reads path (when non-empty) over the defaults, then applies the
// environment overrides and validates the result.
func Load(path string) (*File, error) {
	f := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, f); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	f.applyEnv()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) applyEnv() {
	if v := os.Getenv(EnvDomain); v != "" {
		f.Shop.Domain = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		f.Shop.APIKey = v
	}
	if v := os.Getenv(EnvChannelID); v != "" {
		f.Shop.ChannelID = v
	}
}

// Validate checks the parts that the library constructors do not.
func (f *File) Validate() error {
	if f.HTTP.Timeout <= 0 {
		return fmt.Errorf("config: http.timeout must be positive")
	}
	if f.HTTP.RateLimit < 0 || (f.HTTP.RateLimit > 0 && f.HTTP.Burst <= 0) {
		return fmt.Errorf("config: http.rate_limit needs a positive burst")
	}

	switch strings.ToLower(f.Cache.Backend) {
	case "", BackendNone, BackendMemory:
	case BackendRedis:
		if f.Cache.Addr == "" {
			return fmt.Errorf("config: cache.addr is required for the redis backend")
		}
	case BackendObjstore:
		if f.Cache.Dir == "" {
			return fmt.Errorf("config: cache.dir is required for the objstore backend")
		}
	default:
		return fmt.Errorf("config: unknown cache backend %q", f.Cache.Backend)
	}
	return nil
}

// ShopConfig builds the immutable library Config from the shop section.
func (f *File) ShopConfig() (*shopclient.Config, error) {
	return shopclient.NewConfig(f.Shop.Domain, f.Shop.APIKey, f.Shop.ChannelID)
}
