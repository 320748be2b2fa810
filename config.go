package shopclient

import (
	"fmt"
	"strings"
)

// Config holds the connection parameters shared by every adapter and serializer.
// It cannot be modified after NewConfig returns, so a single pointer is safely
// shared across concurrent calls.
type Config struct {
	domain    string
	apiKey    string
	channelID string
}

// NewConfig validates and builds a Config. domain is the shop's myshopify
// subdomain (e.g. "buckets-o-stuff").
func NewConfig(domain, apiKey, channelID string) (*Config, error) {
	domain = strings.TrimSpace(domain)
	apiKey = strings.TrimSpace(apiKey)
	channelID = strings.TrimSpace(channelID)

	switch {
	case domain == "":
		return nil, &ConfigError{"domain cannot be empty"}
	case apiKey == "":
		return nil, &ConfigError{"api key cannot be empty"}
	case channelID == "":
		return nil, &ConfigError{"channel id cannot be empty"}
	}

	return &Config{
		domain:    domain,
		apiKey:    apiKey,
		channelID: channelID,
	}, nil
}

// Domain returns the shop domain.
func (c *Config) Domain() string { return c.domain }

// APIKey returns the API key used by adapters to authenticate.
func (c *Config) APIKey() string { return c.apiKey }

// ChannelID returns the sales channel the listings belong to.
func (c *Config) ChannelID() string { return c.channelID }

// String hides the API key so configs can be logged.
func (c *Config) String() string {
	return fmt.Sprintf("Config{domain=%s channel=%s}", c.domain, c.channelID)
}
