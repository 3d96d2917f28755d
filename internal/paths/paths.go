// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is used for the per-user configuration directory
const AppName = "rollcall"

// GetConfigDir returns the rollcall configuration directory.
// ROLLCALL_CONFIG_DIR wins, then the platform's user config location.
func GetConfigDir() string {
	if dir := os.Getenv("ROLLCALL_CONFIG_DIR"); dir != "" {
		return dir
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		if userProfile := os.Getenv("USERPROFILE"); userProfile != "" {
			return filepath.Join(userProfile, "."+AppName)
		}
		return "." + AppName
	}

	// XDG Base Directory specification
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, AppName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// GetConfigFile returns the path to the main config file
func GetConfigFile() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// GetTempDir returns the directory used for uploaded documents
func GetTempDir() string {
	return os.TempDir()
}
