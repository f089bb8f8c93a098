package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

// Feedback backends accepted by Settings.Feedback.
const (
	FeedbackBell     = "bell"
	FeedbackLog      = "log"
	FeedbackNone     = "none"
	FeedbackProvider = "provider"
)

// Settings holds the tunables that may come from config.yaml or the
// environment. Environment values win over the file.
type Settings struct {
	TickInterval time.Duration `yaml:"tick_interval" env:"FOCUSDRIVE_TICK_INTERVAL"`
	TimeScale    float64       `yaml:"time_scale" env:"FOCUSDRIVE_TIME_SCALE"`
	TimeZone     string        `yaml:"time_zone" env:"FOCUSDRIVE_TIME_ZONE"`
	LogLevel     string        `yaml:"log_level" env:"FOCUSDRIVE_LOG_LEVEL"`
	OriginName   string        `yaml:"origin_name" env:"FOCUSDRIVE_ORIGIN_NAME"`
	OriginLat    float64       `yaml:"origin_lat" env:"FOCUSDRIVE_ORIGIN_LAT"`
	OriginLon    float64       `yaml:"origin_lon" env:"FOCUSDRIVE_ORIGIN_LON"`
	Feedback     string        `yaml:"feedback" env:"FOCUSDRIVE_FEEDBACK"`
}

type Config struct {
	Settings

	Home       string
	DBPath     string
	JournalDir string
	LogPath    string
	Location   *time.Location
}

func Defaults() Settings {
	return Settings{
		TickInterval: time.Second,
		TimeScale:    1,
		TimeZone:     "Local",
		LogLevel:     "info",
		OriginName:   "Current Location",
		OriginLat:    37.7749,
		OriginLon:    -122.4194,
		Feedback:     FeedbackBell,
	}
}

func New(home string) (Config, error) {
	if strings.TrimSpace(home) == "" {
		return Config{}, fmt.Errorf("home path is required")
	}
	settings := Defaults()
	if err := loadFile(filepath.Join(home, fileName), &settings); err != nil {
		return Config{}, err
	}
	if err := env.Parse(&settings); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return Config{}, err
	}
	loc, err := time.LoadLocation(settings.TimeZone)
	if err != nil {
		return Config{}, fmt.Errorf("load time zone %q: %w", settings.TimeZone, err)
	}
	return Config{
		Settings:   settings,
		Home:       home,
		DBPath:     filepath.Join(home, "focusdrive.db"),
		JournalDir: filepath.Join(home, "journal"),
		LogPath:    filepath.Join(home, "focusdrive.log"),
		Location:   loc,
	}, nil
}

// DefaultHome is ~/.focusdrive, falling back to the working directory when
// the user home cannot be resolved.
func DefaultHome() string {
	dir, err := os.UserHomeDir()
	if err != nil || dir == "" {
		return ".focusdrive"
	}
	return filepath.Join(dir, ".focusdrive")
}

// WallInterval is how often the owning loop should fire one simulated tick.
func (c Config) WallInterval() time.Duration {
	return time.Duration(float64(c.TickInterval) / c.TimeScale)
}

func (s Settings) Validate() error {
	if s.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive")
	}
	if s.TimeScale <= 0 {
		return fmt.Errorf("time scale must be positive")
	}
	if s.OriginLat < -90 || s.OriginLat > 90 {
		return fmt.Errorf("origin latitude must be between -90 and 90")
	}
	if s.OriginLon < -180 || s.OriginLon > 180 {
		return fmt.Errorf("origin longitude must be between -180 and 180")
	}
	switch s.Feedback {
	case FeedbackBell, FeedbackLog, FeedbackNone, FeedbackProvider:
	default:
		return fmt.Errorf("unknown feedback backend: %s", s.Feedback)
	}
	return nil
}

func loadFile(path string, into *Settings) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	return nil
}
