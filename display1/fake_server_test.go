// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package display1

import (
	"errors"
	"fmt"
	"testing"

	"github.com/linuxdeepin/go-x11-client/ext/randr"
	"github.com/stretchr/testify/require"
)

// fakeServer records every request in calls, e.g. "grab", "crtc 11",
// "primary 1", "size 4880x1080", "ungrab", "sync".
type fakeServer struct {
	resources ScreenResources
	outputs   map[randr.Output]*OutputPort
	crtcInfos map[randr.Crtc]*CrtcInfo

	grabErr     error
	failConfigs map[randr.Crtc]bool

	calls   []string
	configs []CrtcConfig
	primary randr.Output
	screen  *VirtualScreen
}

func newFakeServer(crtcs ...randr.Crtc) *fakeServer {
	fs := &fakeServer{
		outputs:     make(map[randr.Output]*OutputPort),
		crtcInfos:   make(map[randr.Crtc]*CrtcInfo),
		failConfigs: make(map[randr.Crtc]bool),
	}
	for _, crtc := range crtcs {
		fs.resources.Crtcs = append(fs.resources.Crtcs, crtc)
		fs.crtcInfos[crtc] = &CrtcInfo{Rotation: randr.RotationRotate0}
	}
	return fs
}

func (fs *fakeServer) addMode(id uint32, width, height uint16) *fakeServer {
	fs.resources.Modes = append(fs.resources.Modes, ModeInfo{
		Id:     id,
		name:   fmt.Sprintf("%dx%d", width, height),
		Width:  width,
		Height: height,
		Rate:   60,
	})
	return fs
}

// addOutput adds a port whose first mode is its only preferred one.
func (fs *fakeServer) addOutput(id randr.Output, name string, connected bool, modes ...randr.Mode) *OutputPort {
	port := &OutputPort{
		ID:        id,
		Name:      name,
		Connected: connected,
		MmWidth:   uint32(id) * 100,
		MmHeight:  uint32(id) * 10,
		Modes:     modes,
	}
	if len(modes) > 0 {
		port.NumPreferred = 1
	}
	fs.resources.Outputs = append(fs.resources.Outputs, id)
	fs.outputs[id] = port
	return port
}

// scanout makes crtc drive port at mode, as found at session start.
func (fs *fakeServer) scanout(port *OutputPort, crtc randr.Crtc, mode randr.Mode, x, y int16) {
	port.Crtc = crtc
	info := findMode(fs.resources.Modes, uint32(mode))
	fs.crtcInfos[crtc] = &CrtcInfo{
		X:        x,
		Y:        y,
		Width:    info.Width,
		Height:   info.Height,
		Mode:     mode,
		Rotation: randr.RotationRotate0,
		Outputs:  []randr.Output{port.ID},
	}
}

func (fs *fakeServer) reset() {
	fs.calls = nil
	fs.configs = nil
	fs.screen = nil
}

func (fs *fakeServer) config(crtc randr.Crtc) (CrtcConfig, bool) {
	for i := len(fs.configs) - 1; i >= 0; i-- {
		if fs.configs[i].Crtc == crtc {
			return fs.configs[i], true
		}
	}
	return CrtcConfig{}, false
}

func (fs *fakeServer) GetScreenResources() (*ScreenResources, error) {
	res := fs.resources
	return &res, nil
}

func (fs *fakeServer) GetOutputInfo(output randr.Output) (*OutputPort, error) {
	port, ok := fs.outputs[output]
	if !ok {
		return nil, errors.New("bad output")
	}
	p := *port
	return &p, nil
}

func (fs *fakeServer) GetCrtcInfo(crtc randr.Crtc) (*CrtcInfo, error) {
	info, ok := fs.crtcInfos[crtc]
	if !ok {
		return nil, errors.New("bad crtc")
	}
	i := *info
	return &i, nil
}

func (fs *fakeServer) SetCrtcConfig(cfg CrtcConfig) error {
	fs.calls = append(fs.calls, fmt.Sprintf("crtc %d", cfg.Crtc))
	if fs.failConfigs[cfg.Crtc] {
		return errors.New("set crtc config failed")
	}
	fs.configs = append(fs.configs, cfg)
	return nil
}

func (fs *fakeServer) SetOutputPrimary(output randr.Output) error {
	fs.calls = append(fs.calls, fmt.Sprintf("primary %d", output))
	fs.primary = output
	return nil
}

func (fs *fakeServer) SetScreenSize(size VirtualScreen) error {
	fs.calls = append(fs.calls, fmt.Sprintf("size %dx%d", size.Width, size.Height))
	fs.screen = &size
	return nil
}

func (fs *fakeServer) GrabServer() error {
	if fs.grabErr != nil {
		return fs.grabErr
	}
	fs.calls = append(fs.calls, "grab")
	return nil
}

func (fs *fakeServer) UngrabServer() error {
	fs.calls = append(fs.calls, "ungrab")
	return nil
}

func (fs *fakeServer) Sync() error {
	fs.calls = append(fs.calls, "sync")
	return nil
}

func newTestSession(t *testing.T, fs *fakeServer) *Session {
	s, err := NewSession(fs)
	require.NoError(t, err)
	return s
}

// activeMonitor gives a monitor of s the crtc from the pool and drives it at
// mode.
func activeMonitor(t *testing.T, s *Session, name string, mode randr.Mode) *Monitor {
	m := s.Monitor(name)
	require.NotNil(t, m, name)
	require.NoError(t, m.Reconfigure())
	require.NoError(t, m.SetOutputMode(mode))
	return m
}

// boundCrtcs counts the crtcs held by the monitors of s.
func boundCrtcs(s *Session) []randr.Crtc {
	var result []randr.Crtc
	for _, m := range s.monitors {
		if crtc, ok := m.Crtc(); ok {
			result = append(result, crtc)
		}
	}
	return result
}
