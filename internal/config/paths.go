package config

import (
	"os"
	"path/filepath"
	"strings"
)

// homeDirName is the per-user directory under $HOME.
const homeDirName = ".htmls2epub"

// configFileName is the config file inside the per-user directory.
const configFileName = "config.yaml"

// Paths locates the per-user htmls2epub files.
type Paths struct {
	// HomeDir is ~/.htmls2epub.
	HomeDir string

	// ConfigFile is ~/.htmls2epub/config.yaml.
	ConfigFile string
}

// DefaultPaths returns the per-user paths rooted at the user's home.
func DefaultPaths() (*Paths, error) {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	home := filepath.Join(userHome, homeDirName)
	return &Paths{HomeDir: home, ConfigFile: filepath.Join(home, configFileName)}, nil
}

// GetConfigFile returns HTMLS2EPUB_CONFIG when set, else the per-user
// config file.
func GetConfigFile() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}
	return paths.ConfigFile, nil
}

// ExpandPath replaces a leading "~" or "~/" with the user's home. Other
// forms, including "~user", are returned unchanged.
func ExpandPath(p string) (string, error) {
	rest, ok := strings.CutPrefix(p, "~")
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != filepath.Separator) {
		return p, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if rest == "" {
		return userHome, nil
	}
	return filepath.Join(userHome, rest[1:]), nil
}
