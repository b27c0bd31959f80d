// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package display1

import (
	"github.com/linuxdeepin/go-x11-client/ext/randr"
	"golang.org/x/xerrors"
)

// ResourceCatalog is a snapshot of the crtcs, outputs and modes the server
// reported when it was built. It is not refreshed, a new reconfiguration
// cycle builds a new one.
type ResourceCatalog struct {
	server  DisplayServer
	crtcs   []randr.Crtc
	outputs []*OutputPort
	modes   []ModeInfo
}

func NewResourceCatalog(server DisplayServer) (*ResourceCatalog, error) {
	resources, err := server.GetScreenResources()
	if err != nil {
		return nil, xerrors.Errorf("get screen resources: %w", err)
	}

	c := &ResourceCatalog{
		server:  server,
		crtcs:   append([]randr.Crtc(nil), resources.Crtcs...),
		outputs: make([]*OutputPort, 0, len(resources.Outputs)),
		modes:   append([]ModeInfo(nil), resources.Modes...),
	}

	for _, outputId := range resources.Outputs {
		port, err := server.GetOutputInfo(outputId)
		if err != nil || port == nil {
			// 当作断开的 output 处理
			logger.Warningf("get output %v info failed: %v", outputId, err)
			port = &OutputPort{ID: outputId}
		}
		c.outputs = append(c.outputs, port)
	}
	return c, nil
}

func (c *ResourceCatalog) Crtcs() []randr.Crtc {
	return append([]randr.Crtc(nil), c.crtcs...)
}

func (c *ResourceCatalog) Outputs() []*OutputPort {
	return c.outputs
}

func (c *ResourceCatalog) Modes() []ModeInfo {
	return c.modes
}

func (c *ResourceCatalog) findMode(mode randr.Mode) (ModeInfo, bool) {
	info := findMode(c.modes, uint32(mode))
	return info, !info.isZero()
}

func (c *ResourceCatalog) hasCrtc(crtc randr.Crtc) bool {
	for _, c0 := range c.crtcs {
		if c0 == crtc {
			return true
		}
	}
	return false
}

func (c *ResourceCatalog) crtcInfo(crtc randr.Crtc) (*CrtcInfo, error) {
	if !c.hasCrtc(crtc) {
		return nil, xerrors.Errorf("crtc %v is not in the snapshot", crtc)
	}
	info, err := c.server.GetCrtcInfo(crtc)
	if err != nil {
		return nil, xerrors.Errorf("get crtc %v info: %w", crtc, err)
	}
	return info, nil
}
