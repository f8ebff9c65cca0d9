// Package bridge polls Ariston appliances and republishes their state and
// energy figures over MQTT as retained JSON documents, the shape home
// automation consumers expect. It can optionally run an in-process broker
// for standalone deployments and serve the last published documents over a
// small HTTP status API.
package bridge

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied by ParseConfig when the YAML omits a field.
const (
	DefaultTopicPrefix    = "ariston"
	DefaultPollInterval   = time.Minute
	DefaultEnergyInterval = time.Hour
	DefaultBrokerAddress  = ":1883"
)

// Measurement unit selectors for the units config field.
const (
	UnitsMetric = "metric"
	UnitsUS     = "us"
)

// Duration decodes YAML strings like "90s" or "15m" into a time.Duration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("bridge: duration must be a string like \"30s\": %w", err)
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("bridge: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// MQTTConfig points the bridge at its broker.
type MQTTConfig struct {
	// URL is the broker endpoint, e.g. mqtt://localhost:1883. Optional when
	// the embedded broker is enabled; the bridge then connects to itself.
	URL string `yaml:"url"`
	// ClientID overrides the generated client id. Must be unique per broker.
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// TopicPrefix roots every published topic.
	TopicPrefix string `yaml:"topic_prefix"`
	// Embedded starts an in-process broker on EmbeddedAddress, for setups
	// without an external one.
	Embedded        bool   `yaml:"embedded"`
	EmbeddedAddress string `yaml:"embedded_address"`
}

// HTTPConfig configures the status API.
type HTTPConfig struct {
	// Address to serve the status API on, e.g. ":8080". Empty disables it.
	Address string `yaml:"address"`
}

// Config is the bridge configuration, decoded from YAML.
type Config struct {
	// Ariston NET account credentials.
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// Gateways restricts polling to these ids. Empty polls every gateway
	// on the account.
	Gateways []string `yaml:"gateways"`

	// Units selects "metric" (default) or "us" measurement units.
	Units string `yaml:"units"`
	// Locale is the culture tag for localized option texts, e.g. "en-US".
	Locale string `yaml:"locale"`

	// PollInterval is the state refresh cadence, EnergyInterval the slower
	// consumption refresh cadence.
	PollInterval   Duration `yaml:"poll_interval"`
	EnergyInterval Duration `yaml:"energy_interval"`

	MQTT MQTTConfig `yaml:"mqtt"`
	HTTP HTTPConfig `yaml:"http"`
}

// ParseConfig decodes a YAML config document, fills defaults and validates.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("bridge: parsing config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bridge: reading config: %w", err)
	}
	return ParseConfig(data)
}

func (c *Config) applyDefaults() {
	if c.Units == "" {
		c.Units = UnitsMetric
	}
	if c.PollInterval <= 0 {
		c.PollInterval = Duration(DefaultPollInterval)
	}
	if c.EnergyInterval <= 0 {
		c.EnergyInterval = Duration(DefaultEnergyInterval)
	}
	if c.MQTT.TopicPrefix == "" {
		c.MQTT.TopicPrefix = DefaultTopicPrefix
	}
	if c.MQTT.Embedded {
		if c.MQTT.EmbeddedAddress == "" {
			c.MQTT.EmbeddedAddress = DefaultBrokerAddress
		}
		if c.MQTT.URL == "" {
			c.MQTT.URL = loopbackURL(c.MQTT.EmbeddedAddress)
		}
	}
}

func (c *Config) validate() error {
	if c.Username == "" {
		return fmt.Errorf("bridge: username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("bridge: password is required")
	}
	if c.Units != UnitsMetric && c.Units != UnitsUS {
		return fmt.Errorf("bridge: units must be %q or %q, got %q", UnitsMetric, UnitsUS, c.Units)
	}
	if c.MQTT.URL == "" {
		return fmt.Errorf("bridge: mqtt.url is required unless mqtt.embedded is set")
	}
	if _, err := url.Parse(c.MQTT.URL); err != nil {
		return fmt.Errorf("bridge: invalid mqtt.url: %w", err)
	}
	if strings.ContainsAny(c.MQTT.TopicPrefix, "+#") || strings.HasSuffix(c.MQTT.TopicPrefix, "/") {
		return fmt.Errorf("bridge: invalid mqtt.topic_prefix %q", c.MQTT.TopicPrefix)
	}
	return nil
}

// loopbackURL derives the broker URL the bridge dials when it hosts the
// broker itself. A listen address without a host binds every interface, so
// the client side substitutes localhost.
func loopbackURL(address string) string {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return "mqtt://localhost:1883"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return fmt.Sprintf("mqtt://%s", net.JoinHostPort(host, port))
}
