package configs

import (
	"log"
	"os"
	"path/filepath"
)

type UserSettings struct {
	// ConfigDir holds the registry file (registry.toml).
	ConfigDir string

	// StorageDir is the default base directory for the local storage backend.
	StorageDir string
}

var UserTotaraSettings *UserSettings

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	// This is independent of what repo you are in, so it is ok to init here
	UserTotaraSettings = &UserSettings{
		ConfigDir:  filepath.Join(configDir, "totara"),
		StorageDir: filepath.Join(configDir, "totara", "storage"),
	}
}
