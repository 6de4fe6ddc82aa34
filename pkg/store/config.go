package store

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	defaultJournal  = "~/Documents/Kammi"
	defaultAutosave = time.Second
)

// Config locates the journal directory and the settings document.
type Config interface {
	JournalPath() string
	SettingsPath() string
	AutosaveDelay() time.Duration
	LogPath() string
}

// LoadConfig reads .kammi.{yaml,json,toml} from $KAMMI_CONFIG_PATH or the
// working directory, with KAMMI_* environment overrides.
func LoadConfig() (Config, error) {
	v := viper.New()
	settingsDir := defaultSettingsDir()
	v.SetDefault("journal", defaultJournal)
	v.SetDefault("settings", filepath.Join(settingsDir, "settings.json"))
	v.SetDefault("autosave", defaultAutosave)
	v.SetDefault("log", "")
	v.SetConfigName(".kammi") // .yaml is implicit
	v.SetEnvPrefix("KAMMI")
	v.AutomaticEnv()

	if override := os.Getenv("KAMMI_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &fileConfig{
		Journal:  v.GetString("journal"),
		Settings: v.GetString("settings"),
		Autosave: v.GetDuration("autosave"),
		Log:      v.GetString("log"),
	}
	return cfg.expand()
}

// StaticConfig is a Config with fixed values, mostly for tests and tooling.
func StaticConfig(journal, settings string) Config {
	return &fileConfig{Journal: journal, Settings: settings, Autosave: defaultAutosave}
}

type fileConfig struct {
	Journal  string        `json:"journal"`
	Settings string        `json:"settings"`
	Autosave time.Duration `json:"autosave"`
	Log      string        `json:"log"`
}

func (f *fileConfig) expand() (*fileConfig, error) {
	var err error
	if f.Journal, err = homedir.Expand(f.Journal); err != nil {
		return nil, err
	}
	if f.Settings, err = homedir.Expand(f.Settings); err != nil {
		return nil, err
	}
	if f.Log, err = homedir.Expand(f.Log); err != nil {
		return nil, err
	}
	if f.Autosave <= 0 {
		f.Autosave = defaultAutosave
	}
	return f, nil
}

func (f *fileConfig) JournalPath() string {
	return f.Journal
}

func (f *fileConfig) SettingsPath() string {
	return f.Settings
}

func (f *fileConfig) AutosaveDelay() time.Duration {
	return f.Autosave
}

func (f *fileConfig) LogPath() string {
	if f.Log != "" {
		return f.Log
	}
	return filepath.Join(filepath.Dir(f.Settings), "kammi.log")
}

func defaultSettingsDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "kammi")
	}
	return filepath.Join("~", ".kammi")
}
