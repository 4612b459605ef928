// ABOUTME: Standard filesystem path for the conscreen configuration file
// ABOUTME: Resolves ~/.conscreen/config.yaml, falling back to the working directory

package config

import (
	"os"
	"path/filepath"
)

const globalDirName = ".conscreen"

// GlobalDir returns the user-global config directory (~/.conscreen/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// DefaultFile returns the path of the default config file.
func DefaultFile() string {
	return filepath.Join(GlobalDir(), "config.yaml")
}
