package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for htmls2epub configuration.
const envPrefix = "HTMLS2EPUB"

// EnvConfig names the config file to load.
const EnvConfig = envPrefix + "_CONFIG"

// envVars maps config keys to their environment variables.
var envVars = map[string]string{
	KeyOutputDir:      envPrefix + "_OUTPUT_DIR",
	KeyOutputFileName: envPrefix + "_OUTPUT_FILE_NAME",
	KeyBookTitle:      envPrefix + "_BOOK_TITLE",
	KeyBookCreator:    envPrefix + "_BOOK_CREATOR",
	KeyBookLanguage:   envPrefix + "_BOOK_LANGUAGE",
	KeyLogTimestamps:  envPrefix + "_LOG_TIMESTAMPS",
}

// EnvVar returns the environment variable bound to key.
func EnvVar(key string) string {
	return envVars[key]
}

// Loader reads the config file and the environment. The two sources stay
// separate so the resolver can report which one supplied a value.
type Loader struct {
	v   *viper.Viper
	env *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	env := viper.New()
	env.SetEnvPrefix(envPrefix)
	env.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, name := range envVars {
		_ = env.BindEnv(key, name)
	}

	return &Loader{v: viper.New(), env: env}
}

// Load reads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// A missing file yields an empty Config.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Env returns the environment value for key, or "" when unset.
func (l *Loader) Env(key string) string {
	return l.env.GetString(key)
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
