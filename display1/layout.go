// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package display1

import (
	"math"
)

type screenLimits struct {
	center int

	// 水平方向：左链、中心、右链
	hTotalWidth   int
	hTotalWidthMm int
	hMaxHeight    int
	hMaxHeightMm  int

	// 垂直方向：上链、中心、下链
	vTotalHeight   int
	vTotalHeightMm int
	vMaxWidth      int
	vMaxWidthMm    int

	screen VirtualScreen
}

func (l *screenLimits) addHorizontal(m *Monitor) {
	if !m.active() {
		return
	}
	width, height := m.modeSize()
	l.hTotalWidth += width
	l.hTotalWidthMm += int(m.port.MmWidth)
	l.hMaxHeight = maxInt(l.hMaxHeight, height)
	l.hMaxHeightMm = maxInt(l.hMaxHeightMm, int(m.port.MmHeight))
}

func (l *screenLimits) addVertical(m *Monitor) {
	if !m.active() {
		return
	}
	width, height := m.modeSize()
	l.vTotalHeight += height
	l.vTotalHeightMm += int(m.port.MmHeight)
	l.vMaxWidth = maxInt(l.vMaxWidth, width)
	l.vMaxWidthMm = maxInt(l.vMaxWidthMm, int(m.port.MmWidth))
}

// CalculateLimits computes the virtual screen that holds the horizontal strip
// through center (left chain, center, right chain) and the vertical strip
// (top chain, center, bottom chain) at the same time. Monitors without a
// valid mode are left out. The result is kept until the topology or a
// member mode changes.
func (s *Session) CalculateLimits(center *Monitor) VirtualScreen {
	l := &screenLimits{center: center.index}

	s.walk(center, DirectionLeft, l.addHorizontal)
	l.addHorizontal(center)
	s.walk(center, DirectionRight, l.addHorizontal)

	s.walk(center, DirectionTop, l.addVertical)
	l.addVertical(center)
	s.walk(center, DirectionBottom, l.addVertical)

	l.screen = VirtualScreen{
		Width:    clampUint16(maxInt(l.hTotalWidth, l.vMaxWidth)),
		Height:   clampUint16(maxInt(l.vTotalHeight, l.hMaxHeight)),
		MmWidth:  clampUint32(maxInt(l.hTotalWidthMm, l.vMaxWidthMm)),
		MmHeight: clampUint32(maxInt(l.vTotalHeightMm, l.hMaxHeightMm)),
	}
	logger.Debugf("limits of %v: %+v", center, l.screen)
	s.limits = l
	return l.screen
}

// limitsFor returns the memoized limits of center, computing them only when
// nothing valid is cached.
func (s *Session) limitsFor(center *Monitor) VirtualScreen {
	if s.limits != nil && s.limits.center == center.index {
		return s.limits.screen
	}
	return s.CalculateLimits(center)
}

// ScreenSize returns the last computed virtual screen, ok is false when it
// has been invalidated since.
func (s *Session) ScreenSize() (size VirtualScreen, ok bool) {
	if s.limits == nil {
		return VirtualScreen{}, false
	}
	return s.limits.screen, true
}

// rootAnchor is where center goes: right of everything on its left chain and
// below everything on its top chain.
func (s *Session) rootAnchor(center *Monitor) (x, y int) {
	s.walk(center, DirectionLeft, func(m *Monitor) {
		width, _ := m.modeSize()
		x += width
	})
	s.walk(center, DirectionTop, func(m *Monitor) {
		_, height := m.modeSize()
		y += height
	})
	return
}

// CalculateRelativePositions places center at the root anchor and every
// chain member right next to its predecessor.
func (s *Session) CalculateRelativePositions(center *Monitor) {
	rootX, rootY := s.rootAnchor(center)
	center.SetPosition(clampInt16(rootX), clampInt16(rootY))
	centerWidth, centerHeight := center.modeSize()

	x := rootX
	s.walk(center, DirectionLeft, func(m *Monitor) {
		if !m.active() {
			return
		}
		width, _ := m.modeSize()
		x -= width
		m.SetPosition(clampInt16(x), clampInt16(rootY))
	})

	x = rootX + centerWidth
	s.walk(center, DirectionRight, func(m *Monitor) {
		if !m.active() {
			return
		}
		width, _ := m.modeSize()
		m.SetPosition(clampInt16(x), clampInt16(rootY))
		x += width
	})

	y := rootY
	s.walk(center, DirectionTop, func(m *Monitor) {
		if !m.active() {
			return
		}
		_, height := m.modeSize()
		y -= height
		m.SetPosition(clampInt16(rootX), clampInt16(y))
	})

	y = rootY + centerHeight
	s.walk(center, DirectionBottom, func(m *Monitor) {
		if !m.active() {
			return
		}
		_, height := m.modeSize()
		m.SetPosition(clampInt16(rootX), clampInt16(y))
		y += height
	})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampUint16(v int) uint16 {
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	if v < 0 {
		return 0
	}
	return uint16(v)
}

func clampUint32(v int) uint32 {
	if int64(v) > math.MaxUint32 {
		return math.MaxUint32
	}
	if v < 0 {
		return 0
	}
	return uint32(v)
}

func clampInt16(v int) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}
