package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"lunchpad-cli/internal/discovery"
	"lunchpad-cli/internal/mutate"
	"lunchpad-cli/internal/store"

	"github.com/spf13/viper"
)

const (
	KeyDataDir    = "data_dir"
	KeyStorage    = "storage"
	KeyAppDirs    = "app_dirs"
	KeyItemWidth  = "item_width"
	KeyFolderName = "folder_name"
	KeyLogLevel   = "log_level"
	KeyLogFile    = "log_file"

	EnvPrefix        = "LUNCHPAD"
	DefaultItemWidth = 18
	DefaultLogLevel  = "warn"
)

type Config struct {
	// ConfigFile is the file that was read, empty when running on defaults.
	ConfigFile string

	DataDir    string
	Storage    string
	AppDirs    []string
	ItemWidth  int
	FolderName string
	LogLevel   string
	LogFile    string
}

type InvalidError struct {
	Key    string
	Value  any
	Reason string
}

func (e InvalidError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Key, e.Value, e.Reason)
}

// Dir is where config.yaml and, by default, the layout live.
func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.config).
	if v := strings.TrimSpace(os.Getenv("LUNCHPAD_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lunchpad"), nil
}

// New builds a viper instance with defaults, environment binding and the
// config file read in. cfgFile overrides the default location and must exist.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()

	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(EnvPrefix)
	SetDefaults(v, dir, runtime.GOOS)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

func SetDefaults(v *viper.Viper, dir, goos string) {
	v.SetDefault(KeyDataDir, dir)
	v.SetDefault(KeyStorage, store.BackendJSON)
	v.SetDefault(KeyAppDirs, discovery.DefaultDirs(goos))
	v.SetDefault(KeyItemWidth, DefaultItemWidth)
	v.SetDefault(KeyFolderName, mutate.DefaultFolderName)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFile, "")
}

// Load reads the resolved settings out of v and validates them.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		ConfigFile: v.ConfigFileUsed(),
		DataDir:    strings.TrimSpace(v.GetString(KeyDataDir)),
		Storage:    strings.ToLower(strings.TrimSpace(v.GetString(KeyStorage))),
		AppDirs:    appDirs(v.GetStringSlice(KeyAppDirs)),
		ItemWidth:  v.GetInt(KeyItemWidth),
		FolderName: v.GetString(KeyFolderName),
		LogLevel:   strings.TrimSpace(v.GetString(KeyLogLevel)),
		LogFile:    strings.TrimSpace(v.GetString(KeyLogFile)),
	}

	if cfg.DataDir == "" {
		return Config{}, InvalidError{Key: KeyDataDir, Value: `""`, Reason: "must not be empty"}
	}
	switch cfg.Storage {
	case store.BackendJSON, store.BackendSQLite:
	default:
		return Config{}, InvalidError{Key: KeyStorage, Value: cfg.Storage, Reason: "expected json|sqlite"}
	}
	if cfg.ItemWidth <= 0 {
		return Config{}, InvalidError{Key: KeyItemWidth, Value: cfg.ItemWidth, Reason: "must be positive"}
	}
	if strings.TrimSpace(cfg.FolderName) == "" {
		cfg.FolderName = mutate.DefaultFolderName
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "logs", "lunchpad.log")
	}
	return cfg, nil
}

// appDirs accepts both a YAML list and a single PATH-style string, which is
// what LUNCHPAD_APP_DIRS arrives as.
func appDirs(raw []string) []string {
	var out []string
	for _, s := range raw {
		for _, d := range filepath.SplitList(s) {
			if d = strings.TrimSpace(d); d != "" {
				out = append(out, d)
			}
		}
	}
	return out
}
