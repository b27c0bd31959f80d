// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package layoutconfig loads the dock settings and the monitor layout
// profiles used when the laptop is docked or undocked.
package layoutconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/linuxdeepin/go-lib/strv"
	"github.com/linuxdeepin/go-lib/xdg/basedir"
	"github.com/linuxdeepin/thinkdock-daemon/dock"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

const (
	ProfileDocked   = "docked"
	ProfileUndocked = "undocked"
)

// Profile describes one layout: the primary output and the outputs chained
// on each of its sides, nearest first. Outputs not named are switched off.
type Profile struct {
	Primary string   `yaml:"primary"`
	Left    []string `yaml:"left,omitempty"`
	Right   []string `yaml:"right,omitempty"`
	Top     []string `yaml:"top,omitempty"`
	Bottom  []string `yaml:"bottom,omitempty"`
	// Modes maps an output name to "WxH" or "WxH@rate", the preferred mode
	// is used for outputs not listed.
	Modes map[string]string `yaml:"modes,omitempty"`
	Off   []string          `yaml:"off,omitempty"`
}

// Names returns the primary followed by every chained output.
func (p *Profile) Names() strv.Strv {
	var names strv.Strv
	if p.Primary != "" {
		names = append(names, p.Primary)
	}
	for _, chain := range [][]string{p.Left, p.Right, p.Top, p.Bottom} {
		names = append(names, chain...)
	}
	return names
}

func (p *Profile) Validate() error {
	if p.Primary == "" {
		return errors.New("profile has no primary output")
	}
	var seen strv.Strv
	for _, name := range p.Names() {
		if seen.Contains(name) {
			return fmt.Errorf("output %q is placed twice", name)
		}
		seen = append(seen, name)
	}
	off := strv.Strv(p.Off)
	for _, name := range seen {
		if off.Contains(name) {
			return fmt.Errorf("output %q is both placed and off", name)
		}
	}
	return nil
}

type DockConfig struct {
	DockedFile   string        `yaml:"docked_file"`
	ModaliasFile string        `yaml:"modalias_file"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

type Config struct {
	Dock     DockConfig          `yaml:"dock"`
	Profiles map[string]*Profile `yaml:"profiles"`
}

func Default() *Config {
	return &Config{
		Dock: DockConfig{
			DockedFile:   dock.DefaultDockedFile,
			ModaliasFile: dock.DefaultModaliasFile,
			PollInterval: dock.DefaultPollInterval,
		},
		Profiles: make(map[string]*Profile),
	}
}

// DefaultPath is ~/.config/deepin/thinkdock/layout.yaml.
func DefaultPath() string {
	return filepath.Join(basedir.GetUserConfigDir(), "deepin/thinkdock/layout.yaml")
}

// Load reads the config at filename. A missing file is not an error, the
// defaults are returned instead.
func Load(filename string) (*Config, error) {
	cfg := Default()
	// #nosec G304
	content, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	err = yaml.Unmarshal(content, cfg)
	if err != nil {
		return nil, xerrors.Errorf("parse %s: %w", filename, err)
	}
	cfg.fillDefaults()

	for name, profile := range cfg.Profiles {
		if profile == nil {
			delete(cfg.Profiles, name)
			continue
		}
		err = profile.Validate()
		if err != nil {
			return nil, xerrors.Errorf("profile %s: %w", name, err)
		}
	}
	return cfg, nil
}

func (c *Config) fillDefaults() {
	if c.Dock.DockedFile == "" {
		c.Dock.DockedFile = dock.DefaultDockedFile
	}
	if c.Dock.ModaliasFile == "" {
		c.Dock.ModaliasFile = dock.DefaultModaliasFile
	}
	if c.Dock.PollInterval <= 0 {
		c.Dock.PollInterval = dock.DefaultPollInterval
	}
	if c.Profiles == nil {
		c.Profiles = make(map[string]*Profile)
	}
}

// Profile returns the profile for the docked state, nil when none is
// configured.
func (c *Config) Profile(docked bool) *Profile {
	if docked {
		return c.Profiles[ProfileDocked]
	}
	return c.Profiles[ProfileUndocked]
}
