package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Mavwarf/standby/internal/audio"
	"github.com/Mavwarf/standby/internal/paths"
)

// DefaultIntervalMinutes is the wait between keep-alive pulses.
const DefaultIntervalMinutes = 10

// DefaultAFKThreshold is the idle time in seconds after which present_only
// stops pulsing.
const DefaultAFKThreshold = 1800

// Defaults for the icon set builder.
const (
	DefaultIconSource = "./logo/logo_modern.webp"
	DefaultIconOutput = "mac_iconset"
)

// Storage backends for the event log.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// ErrNotFound is returned by FindPath when no config file exists.
var ErrNotFound = errors.New("no " + paths.ConfigFileName + " found")

// Tone holds the keep-alive tone parameters.
type Tone struct {
	Frequency       float64 `json:"frequency"`
	DurationSeconds float64 `json:"duration_seconds"`
	Amplitude       float64 `json:"amplitude"`
	SampleRate      int     `json:"sample_rate"`
}

// MQTT configures the optional pulse heartbeat. An empty Broker disables it.
type MQTT struct {
	Broker   string `json:"broker,omitempty"`
	ClientID string `json:"client_id,omitempty"`
	Topic    string `json:"topic,omitempty"`
	QoS      byte   `json:"qos,omitempty"`
	Retain   bool   `json:"retain,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// Enabled reports whether a broker is configured.
func (m MQTT) Enabled() bool {
	return m.Broker != ""
}

// IconSet holds the icon set builder defaults.
type IconSet struct {
	Source string `json:"source"`
	Output string `json:"output"`
	Bundle bool   `json:"bundle,omitempty"` // write into Output/AppIcon.iconset
}

// Config is the whole standby-config.json document.
type Config struct {
	Tone                Tone    `json:"tone"`
	IntervalMinutes     float64 `json:"interval_minutes"`
	PresentOnly         bool    `json:"present_only,omitempty"`
	AFKThresholdSeconds int     `json:"afk_threshold_seconds,omitempty"`
	Log                 bool    `json:"log,omitempty"`
	Storage             string  `json:"storage,omitempty"` // "file" (default) | "sqlite"
	MQTT                MQTT    `json:"mqtt,omitempty"`
	IconSet             IconSet `json:"iconset"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	var c Config
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	def := audio.DefaultTone()
	c.Tone = Tone{
		Frequency:       def.Frequency,
		DurationSeconds: def.Duration.Seconds(),
		Amplitude:       def.Amplitude,
		SampleRate:      def.SampleRate,
	}
	c.IntervalMinutes = DefaultIntervalMinutes
	c.AFKThresholdSeconds = DefaultAFKThreshold
	c.Storage = StorageFile
	c.MQTT.ClientID = "standby"
	c.MQTT.Topic = "standby/pulse"
	c.IconSet = IconSet{Source: DefaultIconSource, Output: DefaultIconOutput}
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	c.setDefaults()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// AudioTone converts the configured tone into playback parameters.
func (c Config) AudioTone() audio.Tone {
	return audio.Tone{
		Frequency:  c.Tone.Frequency,
		Duration:   time.Duration(c.Tone.DurationSeconds * float64(time.Second)),
		Amplitude:  c.Tone.Amplitude,
		SampleRate: c.Tone.SampleRate,
	}
}

// Interval returns IntervalMinutes as a duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes * float64(time.Minute))
}

// AFKThreshold returns AFKThresholdSeconds as a duration.
func (c Config) AFKThreshold() time.Duration {
	return time.Duration(c.AFKThresholdSeconds) * time.Second
}

// Validate checks value ranges. Loading does not call it so callers can
// apply command-line overrides first.
func Validate(c Config) error {
	if c.Tone.Frequency <= 0 {
		return fmt.Errorf("tone.frequency must be positive, got %g", c.Tone.Frequency)
	}
	if c.Tone.DurationSeconds <= 0 {
		return fmt.Errorf("tone.duration_seconds must be positive, got %g", c.Tone.DurationSeconds)
	}
	if c.Tone.Amplitude <= 0 || c.Tone.Amplitude > 1 {
		return fmt.Errorf("tone.amplitude must be in (0, 1], got %g", c.Tone.Amplitude)
	}
	if c.Tone.SampleRate <= 0 {
		return fmt.Errorf("tone.sample_rate must be positive, got %d", c.Tone.SampleRate)
	}
	if c.IntervalMinutes <= 0 {
		return fmt.Errorf("interval_minutes must be positive, got %g", c.IntervalMinutes)
	}
	if c.AFKThresholdSeconds < 0 {
		return fmt.Errorf("afk_threshold_seconds must not be negative, got %d", c.AFKThresholdSeconds)
	}
	switch c.Storage {
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("storage must be %q or %q, got %q", StorageFile, StorageSQLite, c.Storage)
	}
	if c.MQTT.Enabled() && c.MQTT.Topic == "" {
		return fmt.Errorf("mqtt.topic is required when mqtt.broker is set")
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", c.MQTT.QoS)
	}
	return nil
}

// FindPath returns the config file location. It tries, in order:
//  1. explicitPath (if non-empty; must exist)
//  2. standby-config.json next to the running binary
//  3. standby-config.json in the data directory
func FindPath(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("reading config: %w", err)
		}
		return explicitPath, nil
	}

	if exe, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	p := paths.InDataDir(paths.ConfigFileName)
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}

	return "", ErrNotFound
}

// Load reads the config file found by FindPath. Without an explicit path a
// missing file is not an error: the compiled-in defaults are returned.
func Load(explicitPath string) (Config, error) {
	p, err := FindPath(explicitPath)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return readConfig(p)
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
