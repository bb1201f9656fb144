// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/huddle/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func tempConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.toml")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "huddle "+Version))
}

func TestConfigPath(t *testing.T) {
	p := tempConfig(t)
	out, err := execute(t, "--config", p, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, p, strings.TrimSpace(out))
}

func TestConfigInit(t *testing.T) {
	p := tempConfig(t)

	out, err := execute(t, "-c", p, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+p)

	cfg, err := config.LoadFromPath(p)
	require.NoError(t, err)
	assert.Equal(t, config.Default().User.Username, cfg.User.Username)

	_, err = execute(t, "-c", p, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "-c", p, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigSetAndGet(t *testing.T) {
	p := tempConfig(t)

	_, err := execute(t, "-c", p, "config", "set", "ui.theme", "light")
	require.NoError(t, err)
	_, err = execute(t, "-c", p, "config", "set", "media.camera", "denied")
	require.NoError(t, err)

	out, err := execute(t, "-c", p, "config", "get", "ui.theme")
	require.NoError(t, err)
	assert.Equal(t, "light", strings.TrimSpace(out))

	cfg, err := config.LoadFromPath(p)
	require.NoError(t, err)
	assert.Equal(t, "denied", cfg.Media.Camera)
}

func TestConfigSetRejectsInvalid(t *testing.T) {
	p := tempConfig(t)

	_, err := execute(t, "-c", p, "config", "set", "ui.theme", "neon")
	assert.ErrorContains(t, err, "ui.theme")
	_, statErr := os.Stat(p)
	assert.True(t, os.IsNotExist(statErr), "invalid values are not written")

	_, err = execute(t, "-c", p, "config", "set", "no.such.key", "x")
	assert.Error(t, err)
}

func TestConfigShow(t *testing.T) {
	p := tempConfig(t)
	_, err := execute(t, "-c", p, "config", "set", "user.username", "Neo")
	require.NoError(t, err)

	out, err := execute(t, "-c", p, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `username = "Neo"`)

	out, err = execute(t, "-c", p, "config", "show", "--json")
	require.NoError(t, err)
	var decoded config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Neo", decoded.User.Username)
}

func TestConfigShowMissingFileUsesDefaults(t *testing.T) {
	out, err := execute(t, "-c", tempConfig(t), "config", "get", "call.prompt_timeout_secs")
	require.NoError(t, err)
	assert.Equal(t, "30", strings.TrimSpace(out))
}

func TestProfileSaverIgnoresOverrides(t *testing.T) {
	p := tempConfig(t)
	_, err := execute(t, "-c", p, "config", "set", "call.stun_servers", "stun:file.example:3478")
	require.NoError(t, err)

	t.Setenv("HUDDLE_STUN", "stun:env.example:1")
	t.Setenv("HUDDLE_CAMERA", "denied")
	opts := &globalOptions{configPath: p}
	cfg, err := opts.load()
	require.NoError(t, err)
	require.Equal(t, "denied", cfg.Media.Camera)

	cfg.User.Username = "Neo"
	require.NoError(t, profileSaver(p)(cfg.User))

	onDisk, err := config.LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "Neo", onDisk.User.Username)
	assert.Equal(t, []string{"stun:file.example:3478"}, onDisk.Call.STUNServers)
	assert.Equal(t, "granted", onDisk.Media.Camera)
}

func TestTTYRequiredError(t *testing.T) {
	assert.Equal(t, "not a terminal; cannot start the client", (&TTYRequiredError{Operation: "start the client"}).Error())
	assert.Equal(t, "not a terminal", (&TTYRequiredError{}).Error())
}
