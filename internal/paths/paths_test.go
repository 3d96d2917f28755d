// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConfigDir_Override(t *testing.T) {
	t.Setenv("ROLLCALL_CONFIG_DIR", "/etc/rollcall")
	assert.Equal(t, "/etc/rollcall", GetConfigDir())
	assert.Equal(t, filepath.Join("/etc/rollcall", "config.yaml"), GetConfigFile())
}

func TestGetConfigDir_XDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG is not used on Windows")
	}
	t.Setenv("ROLLCALL_CONFIG_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", "/home/ana/.cfg")
	assert.Equal(t, filepath.Join("/home/ana/.cfg", "rollcall"), GetConfigDir())
}

func TestGetConfigDir_Home(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("home layout differs on Windows")
	}
	t.Setenv("ROLLCALL_CONFIG_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/ana")
	assert.Equal(t, filepath.Join("/home/ana", ".config", "rollcall"), GetConfigDir())
}
