// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package display1

import (
	"github.com/davecgh/go-spew/spew"
	"golang.org/x/xerrors"
)

// Apply commits the layout around center to the server.
//
// When center is off only its own (disabled) crtc configuration is sent and
// the rest of the topology is left alone. Otherwise the positions are
// recomputed, every bound chain member is configured nearest first and the
// virtual screen is resized to the limits. Both paths run under the server
// grab and end with a sync.
//
// A crtc configuration the server rejects is logged and skipped, there is
// no rollback. The returned error is only about the grab itself.
func (s *Session) Apply(center *Monitor) error {
	if center.s != s {
		return ErrForeignMonitor
	}

	if center.IsOff() {
		logger.Debugf("apply %v, which is off", center)
		return s.withServerGrabbed(func() {
			s.pushCrtcConfig(center)
		})
	}

	screen := s.limitsFor(center)
	s.CalculateRelativePositions(center)

	return s.withServerGrabbed(func() {
		s.pushCrtcConfig(center)

		if center.primary {
			err := s.server.SetOutputPrimary(center.port.ID)
			if err != nil {
				logger.Warningf("set %v primary failed: %v", center, err)
			}
		}

		for _, dir := range directions {
			s.walk(center, dir, s.pushCrtcConfig)
		}

		err := s.server.SetScreenSize(screen)
		if err != nil {
			logger.Warningf("set screen size %+v failed: %v", screen, err)
		}
	})
}

func (s *Session) withServerGrabbed(fn func()) error {
	err := s.server.GrabServer()
	if err != nil {
		return xerrors.Errorf("grab server: %w", err)
	}
	logger.Debug("grab server")

	defer func() {
		logger.Debug("ungrab server")
		err := s.server.UngrabServer()
		if err != nil {
			logger.Warning(err)
		}
		err = s.server.Sync()
		if err != nil {
			logger.Warning("sync failed:", err)
		}
	}()

	fn()
	return nil
}

func (s *Session) pushCrtcConfig(m *Monitor) {
	if m.binding == nil {
		logger.Debugf("skip %v: no crtc", m)
		return
	}

	cfg := m.crtcConfig()
	if isDebugLevel() {
		logger.Debugf("crtc config of %v: %s", m, spew.Sdump(cfg))
	}
	err := s.server.SetCrtcConfig(cfg)
	if err != nil {
		logger.Warningf("error setting new screen config of %v: %v", m, err)
	}
}
