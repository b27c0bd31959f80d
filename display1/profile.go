// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package display1

import (
	"errors"
	"math"

	"github.com/linuxdeepin/go-lib/strv"
	"github.com/linuxdeepin/go-x11-client/ext/randr"
	"github.com/linuxdeepin/thinkdock-daemon/common/layoutconfig"
	"golang.org/x/xerrors"
)

var ErrNoUsableMonitor = errors.New("no connected monitor can be primary")

// ApplyProfile rebuilds the topology of the session from p and commits it.
//
// Monitors holding a crtc that are disconnected, listed as off or not named
// by p are switched off and release their crtc first. The primary falls back
// to the first connected monitor when the one named by p is not usable.
// Chain members that cannot get a crtc or a mode are left out of the chain.
func (s *Session) ApplyProfile(p *layoutconfig.Profile) error {
	s.ResetTopology()

	wanted := p.Names()
	off := strv.Strv(p.Off)
	for _, m := range s.monitors {
		if m.binding == nil {
			continue
		}
		if m.IsConnected() && wanted.Contains(m.Name()) && !off.Contains(m.Name()) {
			continue
		}
		s.disable(m)
	}

	primary := s.Monitor(p.Primary)
	if primary == nil || !s.prepareMonitor(primary, p) {
		logger.Warningf("primary %q is not usable, fall back", p.Primary)
		primary = nil
		for _, m := range s.ConnectedMonitors() {
			if off.Contains(m.Name()) {
				continue
			}
			if s.prepareMonitor(m, p) {
				primary = m
				break
			}
		}
		if primary == nil {
			return ErrNoUsableMonitor
		}
	}
	primary.SetPrimary(true)

	chains := [directionCount][]string{
		DirectionLeft:   p.Left,
		DirectionRight:  p.Right,
		DirectionTop:    p.Top,
		DirectionBottom: p.Bottom,
	}
	for _, dir := range directions {
		prev := primary
		for _, name := range chains[dir] {
			m := s.Monitor(name)
			if m == nil {
				logger.Warningf("%s chain: output %q not found", dir, name)
				continue
			}
			if m == primary || !s.prepareMonitor(m, p) {
				continue
			}
			err := prev.SetNeighbor(dir, m)
			if err != nil {
				logger.Warningf("%s chain: %v", dir, err)
				continue
			}
			prev = m
		}
	}

	return s.Apply(primary)
}

// prepareMonitor binds a crtc to m and sets the mode p asks for.
func (s *Session) prepareMonitor(m *Monitor, p *layoutconfig.Profile) bool {
	if !m.IsConnected() {
		logger.Warningf("%v is not connected", m)
		return false
	}
	err := m.Reconfigure()
	if err != nil {
		return false
	}

	mode, err := s.profileMode(m, p.Modes[m.Name()])
	if err != nil {
		logger.Warningf("no mode for %v: %v", m, err)
		s.disable(m)
		return false
	}
	err = m.SetOutputMode(mode)
	if err != nil {
		s.disable(m)
		return false
	}
	return true
}

// disable switches the crtc of m off on the server, then gives it back to
// the pool. The crtc is kept when the server could not be grabbed.
func (s *Session) disable(m *Monitor) {
	if m.binding == nil {
		return
	}
	logger.Infof("disable %v", m)
	m.TurnOff()
	err := s.Apply(m)
	if err != nil {
		logger.Warningf("disable %v failed: %v", m, err)
		return
	}
	m.Release()
}

// profileMode resolves a "WxH[@rate]" setting against the modes of m, an
// empty setting picks the preferred mode.
func (s *Session) profileMode(m *Monitor, setting string) (randr.Mode, error) {
	if setting == "" {
		mode, err := m.PreferredOutputMode()
		if err == nil {
			return mode, nil
		}
		if len(m.port.Modes) == 0 {
			return 0, err
		}
		return m.port.Modes[0], nil
	}

	width, height, rate, err := parseModeSize(setting)
	if err != nil {
		return 0, xerrors.Errorf("%v: %w", err, ErrInvalidMode)
	}
	for _, mode := range m.port.Modes {
		info, ok := s.catalog.findMode(mode)
		if !ok || info.Width != width || info.Height != height {
			continue
		}
		if rate != 0 && math.Abs(info.Rate-rate) > 0.5 {
			continue
		}
		return mode, nil
	}
	return 0, xerrors.Errorf("%s: %w", setting, ErrInvalidMode)
}
