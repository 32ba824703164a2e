package main

import (
	"os"
	"path/filepath"
)

const (
	homeEnv     = "FOLIO_HOME"
	logLevelEnv = "FOLIO_LOG_LEVEL"
)

// stateDir resolves the directory holding preferences and logs. An explicit flag wins over
// FOLIO_HOME, which wins over ~/.folio.
func stateDir(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(homeEnv); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".folio"), nil
}

func preferencesPath(dir string) string {
	return filepath.Join(dir, "preferences.json")
}

func defaultLogPath(dir string) string {
	return filepath.Join(dir, "folio.log")
}
