package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"lieferplaner/internal/logs"
)

// Config holds the unified application configuration
type Config struct {
	DataDir              string        `validate:"required"`
	RecordsFile          string        `validate:"required"`
	NotifyStateFile      string        `validate:"required"`
	CatalogFile          string        `validate:"required"`
	DrawingRoots         []string      `validate:"min=1,dive,required"`
	MonitorInterval      time.Duration `validate:"gt=0"`
	AppName              string        `validate:"required"`
	NotifyURLs           []string      `validate:"dive,required"`
	DesktopNotifications bool
	LogDir               string
}

// Settings represents the config file structure
type Settings struct {
	DataDir              string   `yaml:"data_dir,omitempty"`
	RecordsFile          string   `yaml:"records_file,omitempty"`
	NotifyStateFile      string   `yaml:"notify_state_file,omitempty"`
	CatalogFile          string   `yaml:"catalog_file,omitempty"`
	DrawingRoots         []string `yaml:"drawing_roots,omitempty"`
	MonitorInterval      string   `yaml:"monitor_interval,omitempty"`
	AppName              string   `yaml:"app_name,omitempty"`
	NotifyURLs           []string `yaml:"notify_urls,omitempty"`
	DesktopNotifications *bool    `yaml:"desktop_notifications,omitempty"`
	LogDir               string   `yaml:"log_dir,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	DataDir  string
	Roots    []string
	Interval time.Duration
}

const (
	envConfigFile = "LIEFERPLANER_CONFIG"
	envDataDir    = "LIEFERPLANER_DATA_DIR"
	envRoots      = "LIEFERPLANER_ROOTS"
	envInterval   = "LIEFERPLANER_INTERVAL"
	envNotifyURLs = "LIEFERPLANER_NOTIFY_URLS"
)

// DefaultDrawingRoots are probed in order when nothing else is configured.
var DefaultDrawingRoots = []string{`Z:\Zeichnungen`, `\\BUKSRV1\Zeichnungen`}

var validate = validator.New()

func defaults() (*Config, error) {
	dataDir, err := GetDefaultDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		DataDir:              dataDir,
		RecordsFile:          "bundk_rows.json",
		NotifyStateFile:      "notify_state.json",
		CatalogFile:          "step_index.json",
		DrawingRoots:         append([]string(nil), DefaultDrawingRoots...),
		MonitorInterval:      15 * time.Minute,
		AppName:              "Lieferplaner BUNDK",
		DesktopNotifications: true,
	}, nil
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg, err := defaults()
	if err != nil {
		return nil, err
	}

	// Try loading config file first for base values
	if configPath, err := getConfigPath(); err == nil {
		fileConfig, err := loadConfigFile(configPath)
		switch {
		case err == nil:
			cfg.applySettings(fileConfig)
		case !os.IsNotExist(err):
			logs.Logger.Printf("config: ignoring %s: %v", configPath, err)
		}
	}

	// Priority 2: Environment variables override config file
	if v := os.Getenv(envDataDir); v != "" {
		cfg.DataDir = expandPath(v)
	}
	if v := os.Getenv(envRoots); v != "" {
		cfg.DrawingRoots = ParsePathList(v)
	}
	if v := os.Getenv(envInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.MonitorInterval = d
		} else {
			logs.Logger.Printf("config: ignoring %s=%q: %v", envInterval, v, err)
		}
	}
	if v := os.Getenv(envNotifyURLs); v != "" {
		cfg.NotifyURLs = ParseCommaSeparated(v)
	}

	// Priority 1: CLI flags override everything
	if flags.DataDir != "" {
		cfg.DataDir = expandPath(flags.DataDir)
	}
	if len(flags.Roots) > 0 {
		cfg.DrawingRoots = flags.Roots
	}
	if flags.Interval > 0 {
		cfg.MonitorInterval = flags.Interval
	}

	if cfg.LogDir == "" {
		cfg.LogDir = cfg.DataDir
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applySettings(s *Settings) {
	if s.DataDir != "" {
		c.DataDir = expandPath(s.DataDir)
	}
	if s.RecordsFile != "" {
		c.RecordsFile = s.RecordsFile
	}
	if s.NotifyStateFile != "" {
		c.NotifyStateFile = s.NotifyStateFile
	}
	if s.CatalogFile != "" {
		c.CatalogFile = s.CatalogFile
	}
	if len(s.DrawingRoots) > 0 {
		c.DrawingRoots = s.DrawingRoots
	}
	if s.MonitorInterval != "" {
		if d, err := time.ParseDuration(s.MonitorInterval); err == nil {
			c.MonitorInterval = d
		} else {
			logs.Logger.Printf("config: ignoring monitor_interval %q: %v", s.MonitorInterval, err)
		}
	}
	if s.AppName != "" {
		c.AppName = s.AppName
	}
	if len(s.NotifyURLs) > 0 {
		c.NotifyURLs = s.NotifyURLs
	}
	if s.DesktopNotifications != nil {
		c.DesktopNotifications = *s.DesktopNotifications
	}
	if s.LogDir != "" {
		c.LogDir = expandPath(s.LogDir)
	}
}

// GetDefaultDir returns the default data directory path
func GetDefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lieferplaner"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	if p := os.Getenv(envConfigFile); p != "" {
		return expandPath(p), nil
	}
	dir, err := GetDefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureDataDir creates the data directory if missing
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

func (c *Config) inDataDir(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// RecordsPath returns the location of the work-item record document
func (c *Config) RecordsPath() string {
	return c.inDataDir(c.RecordsFile)
}

// NotifyStatePath returns the location of the notification state document
func (c *Config) NotifyStatePath() string {
	return c.inDataDir(c.NotifyStateFile)
}

// CatalogPath returns the location of the drawing catalog document
func (c *Config) CatalogPath() string {
	return c.inDataDir(c.CatalogFile)
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	def, err := defaults()
	if err != nil {
		return err
	}
	desktop := def.DesktopNotifications

	settings := Settings{
		DataDir:              def.DataDir,
		RecordsFile:          def.RecordsFile,
		NotifyStateFile:      def.NotifyStateFile,
		CatalogFile:          def.CatalogFile,
		DrawingRoots:         def.DrawingRoots,
		MonitorInterval:      def.MonitorInterval.String(),
		AppName:              def.AppName,
		DesktopNotifications: &desktop,
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ParseCommaSeparated splits a comma-separated string into a slice
func ParseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// ParsePathList splits an OS path list (':' on Unix, ';' on Windows).
// Drive-letter roots such as Z:\ survive on Windows because ':' is not the separator there.
func ParsePathList(s string) []string {
	var result []string
	for _, p := range filepath.SplitList(s) {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, expandPath(p))
		}
	}
	return result
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
