// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package display1

import (
	"github.com/linuxdeepin/go-x11-client/ext/randr"
)

// crtcPool hands out crtcs in catalog order. available and the crtcs bound
// to monitors are disjoint and together always make up all.
type crtcPool struct {
	all       []randr.Crtc
	available []randr.Crtc
}

func newCrtcPool(all []randr.Crtc) *crtcPool {
	return &crtcPool{
		all:       append([]randr.Crtc(nil), all...),
		available: append([]randr.Crtc(nil), all...),
	}
}

func crtcIndex(crtcs []randr.Crtc, crtc randr.Crtc) int {
	for i, c := range crtcs {
		if c == crtc {
			return i
		}
	}
	return -1
}

// markBusy removes crtc from the available set. It reports false when crtc
// is unknown or already busy.
func (p *crtcPool) markBusy(crtc randr.Crtc) bool {
	idx := crtcIndex(p.available, crtc)
	if idx < 0 {
		return false
	}
	p.available = append(p.available[:idx], p.available[idx+1:]...)
	return true
}

// request takes the first available crtc. ok is false when none is left.
func (p *crtcPool) request() (crtc randr.Crtc, ok bool) {
	if len(p.available) == 0 {
		return 0, false
	}
	crtc = p.available[0]
	p.available = p.available[1:]
	return crtc, true
}

// release puts crtc back at the end of the available set.
func (p *crtcPool) release(crtc randr.Crtc) {
	if crtcIndex(p.all, crtc) < 0 {
		logger.Warningf("release unknown crtc %v", crtc)
		return
	}
	if crtcIndex(p.available, crtc) >= 0 {
		logger.Warningf("crtc %v released twice", crtc)
		return
	}
	p.available = append(p.available, crtc)
}

func (p *crtcPool) availableCrtcs() []randr.Crtc {
	return append([]randr.Crtc(nil), p.available...)
}

func (p *crtcPool) size() int {
	return len(p.all)
}
