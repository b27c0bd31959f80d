// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package layoutconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/linuxdeepin/thinkdock-daemon/dock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
dock:
  docked_file: /tmp/docked
  poll_interval: 500ms
profiles:
  docked:
    primary: VGA1
    left: [LVDS1]
    modes:
      VGA1: 1920x1080@60
  undocked:
    primary: LVDS1
    off: [VGA1]
  empty:
`

func writeConfig(t *testing.T, content string) string {
	filename := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0600))
	return filename
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/docked", cfg.Dock.DockedFile)
	assert.Equal(t, dock.DefaultModaliasFile, cfg.Dock.ModaliasFile)
	assert.Equal(t, 500*time.Millisecond, cfg.Dock.PollInterval)

	assert.Len(t, cfg.Profiles, 2)
	docked := cfg.Profile(true)
	require.NotNil(t, docked)
	assert.Equal(t, "VGA1", docked.Primary)
	assert.Equal(t, []string{"LVDS1"}, docked.Left)
	assert.Equal(t, "1920x1080@60", docked.Modes["VGA1"])

	undocked := cfg.Profile(false)
	require.NotNil(t, undocked)
	assert.Equal(t, []string{"VGA1"}, undocked.Off)
}

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Nil(t, cfg.Profile(true))
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "profiles: [1, 2"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `
profiles:
  docked:
    left: [LVDS1]
`))
	assert.Error(t, err)
}

func TestProfileValidate(t *testing.T) {
	p := &Profile{Primary: "LVDS1", Right: []string{"VGA1", "HDMI1"}, Off: []string{"DP1"}}
	assert.NoError(t, p.Validate())
	assert.Equal(t, []string{"LVDS1", "VGA1", "HDMI1"}, []string(p.Names()))

	p.Top = []string{"VGA1"}
	assert.Error(t, p.Validate())

	p.Top = nil
	p.Off = []string{"HDMI1"}
	assert.Error(t, p.Validate())

	assert.Error(t, (&Profile{}).Validate())
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "layout.yaml", filepath.Base(DefaultPath()))
}
