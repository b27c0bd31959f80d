// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package display1

import (
	"errors"
	"fmt"

	"github.com/linuxdeepin/go-x11-client/ext/randr"
	"golang.org/x/xerrors"
)

var (
	ErrNoCrtcAvailable = errors.New("no available crtc")
	ErrMonitorUnbound  = errors.New("monitor has no crtc")
	ErrInvalidMode     = errors.New("invalid mode")
	ErrNoPreferredMode = errors.New("output reports no preferred mode")
	ErrTopologyCycle   = errors.New("neighbor chain would form a cycle")
	ErrForeignMonitor  = errors.New("monitor belongs to another session")
)

type Direction int

const (
	DirectionLeft Direction = iota
	DirectionRight
	DirectionTop
	DirectionBottom
	directionCount
)

var directions = [directionCount]Direction{
	DirectionLeft, DirectionRight, DirectionTop, DirectionBottom,
}

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionTop:
		return "top"
	case DirectionBottom:
		return "bottom"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

const noNeighbor = -1

// crtcBinding is the target configuration of the crtc a monitor holds.
// mode 0 means the crtc is bound but switched off.
type crtcBinding struct {
	crtc     randr.Crtc
	x        int16
	y        int16
	width    uint16
	height   uint16
	rotation uint16
	mode     randr.Mode
}

// Monitor is one output port laid out by a Session. Neighbors are indices
// into the session's monitor slice.
type Monitor struct {
	s     *Session
	index int
	port  *OutputPort

	binding *crtcBinding
	// mode is nil while the monitor has no valid mode.
	mode *ModeInfo

	primary   bool
	neighbors [directionCount]int
}

func newMonitor(s *Session, index int, port *OutputPort) *Monitor {
	m := &Monitor{
		s:     s,
		index: index,
		port:  port,
	}
	for i := range m.neighbors {
		m.neighbors[i] = noNeighbor
	}

	if port.Crtc == 0 {
		return m
	}

	if !s.pool.markBusy(port.Crtc) {
		// clone 模式下多个 output 共用一个 crtc，只有第一个持有它
		logger.Warningf("crtc %v of %v is held by another output or unknown, leave it unbound",
			port.Crtc, m)
		return m
	}
	m.binding = &crtcBinding{
		crtc:     port.Crtc,
		rotation: randr.RotationRotate0,
	}

	crtcInfo, err := s.catalog.crtcInfo(port.Crtc)
	if err != nil {
		logger.Warningf("error fetching information from crtc %v: %v", port.Crtc, err)
		return m
	}
	m.binding.x = crtcInfo.X
	m.binding.y = crtcInfo.Y
	m.binding.width = crtcInfo.Width
	m.binding.height = crtcInfo.Height
	m.binding.mode = crtcInfo.Mode

	if crtcInfo.Mode == 0 {
		return m
	}
	mode, ok := s.catalog.findMode(crtcInfo.Mode)
	if !ok {
		logger.Warningf("error fetching info about current mode %v of %v", crtcInfo.Mode, m)
		return m
	}
	m.mode = &mode
	return m
}

func (m *Monitor) String() string {
	return fmt.Sprintf("<Monitor id=%d name=%s>", m.port.ID, m.port.Name)
}

func (m *Monitor) Name() string {
	return m.port.Name
}

func (m *Monitor) Output() randr.Output {
	return m.port.ID
}

func (m *Monitor) PhysicalSize() (mmWidth, mmHeight uint32) {
	return m.port.MmWidth, m.port.MmHeight
}

// Crtc returns the bound crtc, ok is false when the monitor is unbound.
func (m *Monitor) Crtc() (crtc randr.Crtc, ok bool) {
	if m.binding == nil {
		return 0, false
	}
	return m.binding.crtc, true
}

// CurrentMode returns the mode the monitor will be driven at.
func (m *Monitor) CurrentMode() (ModeInfo, bool) {
	if m.mode == nil || m.IsOff() {
		return ModeInfo{}, false
	}
	return *m.mode, true
}

func (m *Monitor) IsConnected() bool {
	return m.port.Connected
}

// IsOff reports whether the monitor has no crtc or its crtc has no mode.
func (m *Monitor) IsOff() bool {
	return m.binding == nil || m.binding.mode == 0
}

// active monitors take part in size and position calculations.
func (m *Monitor) active() bool {
	return !m.IsOff() && m.mode != nil
}

func (m *Monitor) modeSize() (width, height int) {
	if !m.active() {
		return 0, 0
	}
	return int(m.mode.Width), int(m.mode.Height)
}

func (m *Monitor) IsPrimary() bool {
	return m.primary
}

// SetPrimary flags m as the primary monitor, clearing the flag of every
// other monitor of the session.
func (m *Monitor) SetPrimary(primary bool) {
	if primary {
		for _, other := range m.s.monitors {
			other.primary = false
		}
	}
	if m.primary != primary {
		m.s.invalidateLimits()
	}
	m.primary = primary
}

// TurnOff keeps the crtc but clears its mode.
func (m *Monitor) TurnOff() {
	if m.binding == nil {
		return
	}
	logger.Debug("turn off", m)
	m.binding.mode = 0
	m.mode = nil
	m.s.invalidateLimits()
}

// Release gives the crtc back to the pool.
func (m *Monitor) Release() {
	if m.binding != nil {
		logger.Debugf("%v release crtc %v", m, m.binding.crtc)
		m.s.pool.release(m.binding.crtc)
		m.s.invalidateLimits()
	}
	m.binding = nil
	m.mode = nil
}

// Reconfigure binds a free crtc to an unbound monitor. The mode stays unset
// until SetOutputMode is called.
func (m *Monitor) Reconfigure() error {
	if m.binding != nil {
		return nil
	}

	crtc, ok := m.s.pool.request()
	if !ok {
		logger.Warningf("can't reconfigure %v: no available crtcs", m)
		return ErrNoCrtcAvailable
	}
	m.setCrtc(crtc)
	m.s.invalidateLimits()
	return nil
}

func (m *Monitor) setCrtc(crtc randr.Crtc) {
	m.binding = &crtcBinding{
		crtc:     crtc,
		rotation: randr.RotationRotate0,
	}
	m.mode = nil

	crtcInfo, err := m.s.catalog.crtcInfo(crtc)
	if err != nil {
		logger.Warningf("error querying new crtc %v: %v", crtc, err)
		return
	}
	m.binding.x = crtcInfo.X
	m.binding.y = crtcInfo.Y
	m.binding.width = crtcInfo.Width
	m.binding.height = crtcInfo.Height
}

func (m *Monitor) IsOutputModeSupported(mode randr.Mode) bool {
	for _, supported := range m.port.Modes {
		if supported == mode {
			return true
		}
	}
	return false
}

// SetOutputMode drives the bound crtc at mode. Callers are expected to check
// IsOutputModeSupported first, an unsupported mode fails and leaves the
// current mode as it was.
func (m *Monitor) SetOutputMode(mode randr.Mode) error {
	if m.binding == nil {
		logger.Warningf("set mode %v on %v without crtc", mode, m)
		return ErrMonitorUnbound
	}
	if !m.IsOutputModeSupported(mode) {
		logger.Warningf("mode %v is not supported by %v", mode, m)
		return xerrors.Errorf("mode %v of %v: %w", mode, m, ErrInvalidMode)
	}
	info, ok := m.s.catalog.findMode(mode)
	if !ok {
		logger.Warningf("error querying new output mode %v info", mode)
		return xerrors.Errorf("mode %v of %v: %w", mode, m, ErrInvalidMode)
	}

	m.binding.mode = mode
	m.binding.width = info.Width
	m.binding.height = info.Height
	m.mode = &info
	m.s.invalidateLimits()
	return nil
}

// PreferredOutputMode returns the last of the preferred modes of the port.
func (m *Monitor) PreferredOutputMode() (randr.Mode, error) {
	n := m.port.NumPreferred
	if n <= 0 || n > len(m.port.Modes) {
		return 0, ErrNoPreferredMode
	}
	return m.port.Modes[n-1], nil
}

// Position returns (-1, -1) for an unbound monitor.
func (m *Monitor) Position() (x, y int16) {
	if m.binding == nil {
		logger.Warning("requested position of inactive monitor", m)
		return -1, -1
	}
	return m.binding.x, m.binding.y
}

func (m *Monitor) SetPosition(x, y int16) {
	if m.binding == nil {
		logger.Warning("requested to set position on inactive monitor", m)
		return
	}
	m.binding.x = x
	m.binding.y = y
}

func (m *Monitor) Neighbor(dir Direction) *Monitor {
	if dir < 0 || dir >= directionCount {
		return nil
	}
	idx := m.neighbors[dir]
	if idx == noNeighbor {
		return nil
	}
	return m.s.monitors[idx]
}

// SetNeighbor places n next to m in direction dir, nil clears the link.
// Links that would make the chain in dir loop back to m are rejected.
func (m *Monitor) SetNeighbor(dir Direction, n *Monitor) error {
	if dir < 0 || dir >= directionCount {
		return fmt.Errorf("invalid direction %v", dir)
	}
	if n == nil {
		if m.neighbors[dir] != noNeighbor {
			m.neighbors[dir] = noNeighbor
			m.s.invalidateLimits()
		}
		return nil
	}
	if n.s != m.s {
		return ErrForeignMonitor
	}
	for cur := n; cur != nil; cur = cur.Neighbor(dir) {
		if cur == m {
			logger.Warningf("reject %v as %v neighbor of %v: cycle", n, dir, m)
			return ErrTopologyCycle
		}
	}

	m.neighbors[dir] = n.index
	m.s.invalidateLimits()
	return nil
}

func (m *Monitor) clearNeighbors() {
	for _, dir := range directions {
		_ = m.SetNeighbor(dir, nil)
	}
}

func (m *Monitor) crtcConfig() CrtcConfig {
	if m.binding.mode == 0 {
		// 禁用此 crtc，把它的 outputs 设置为空。
		return CrtcConfig{
			Crtc:     m.binding.crtc,
			Rotation: randr.RotationRotate0,
		}
	}
	return CrtcConfig{
		Crtc:     m.binding.crtc,
		Outputs:  []randr.Output{m.port.ID},
		X:        m.binding.x,
		Y:        m.binding.y,
		Rotation: randr.RotationRotate0,
		Mode:     m.binding.mode,
	}
}
