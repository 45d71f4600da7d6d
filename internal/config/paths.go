package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDirName      = "calpost"
	configFile         = "config.yaml"
	serviceAccountFile = "service-account.json"
	tokenFile          = "token.json"
	configDirPermMode  = 0o700
)

// GetConfigDir returns the configuration directory path (~/.config/calpost)
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", configDirName), nil
}

// GetConfigPath returns the path to the default config file
func GetConfigPath() (string, error) {
	return inConfigDir(configFile)
}

// GetServiceAccountPath returns the path to the Google service account key file
func GetServiceAccountPath() (string, error) {
	return inConfigDir(serviceAccountFile)
}

// GetTokenPath returns the path to the stored bearer token
func GetTokenPath() (string, error) {
	return inConfigDir(tokenFile)
}

func inConfigDir(name string) (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, name), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	// MkdirAll is a no-op for an existing directory and keeps its mode.
	if err := os.MkdirAll(configDir, configDirPermMode); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}
