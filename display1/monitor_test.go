// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package display1

import (
	"testing"

	"github.com/linuxdeepin/go-x11-client/ext/randr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMonitorTestServer() (*fakeServer, *OutputPort) {
	fs := newFakeServer(11, 12, 13).
		addMode(100, 1920, 1080).
		addMode(101, 1280, 1024).
		addMode(102, 1680, 1050)
	edp := fs.addOutput(1, "eDP1", true, 100, 101)
	fs.addOutput(2, "HDMI1", true, 101, 100, 999)
	fs.addOutput(3, "DP1", false)
	fs.scanout(edp, 11, 100, 0, 0)
	return fs, edp
}

func Test_newMonitor(t *testing.T) {
	fs, _ := newMonitorTestServer()
	s := newTestSession(t, fs)

	edp := s.Monitor("eDP1")
	require.NotNil(t, edp)
	crtc, ok := edp.Crtc()
	assert.True(t, ok)
	assert.Equal(t, randr.Crtc(11), crtc)
	mode, ok := edp.CurrentMode()
	assert.True(t, ok)
	assert.Equal(t, uint32(100), mode.Id)
	assert.False(t, edp.IsOff())
	assert.True(t, edp.IsConnected())
	assert.Equal(t, "eDP1", edp.Name())
	assert.Equal(t, randr.Output(1), edp.Output())
	mmWidth, mmHeight := edp.PhysicalSize()
	assert.Equal(t, uint32(100), mmWidth)
	assert.Equal(t, uint32(10), mmHeight)

	dp := s.Monitor("DP1")
	_, ok = dp.Crtc()
	assert.False(t, ok)
	assert.True(t, dp.IsOff())
	assert.False(t, dp.IsConnected())

	assert.Nil(t, s.Monitor("VGA1"))
	assert.Len(t, s.ConnectedMonitors(), 2)
	assert.Equal(t, []randr.Crtc{12, 13}, s.AvailableCrtcs())
}

func Test_MonitorStates(t *testing.T) {
	fs, _ := newMonitorTestServer()
	s := newTestSession(t, fs)
	hdmi := s.Monitor("HDMI1")

	// Unbound
	assert.ErrorIs(t, hdmi.SetOutputMode(101), ErrMonitorUnbound)
	x, y := hdmi.Position()
	assert.Equal(t, int16(-1), x)
	assert.Equal(t, int16(-1), y)

	// Bound, 还没有 mode
	require.NoError(t, hdmi.Reconfigure())
	assert.True(t, hdmi.IsOff())
	_, ok := hdmi.CurrentMode()
	assert.False(t, ok)
	// 已经绑定时什么也不做
	require.NoError(t, hdmi.Reconfigure())
	assert.Equal(t, []randr.Crtc{13}, s.AvailableCrtcs())

	// Active
	require.NoError(t, hdmi.SetOutputMode(101))
	assert.False(t, hdmi.IsOff())

	// Off
	hdmi.TurnOff()
	assert.True(t, hdmi.IsOff())
	crtc, ok := hdmi.Crtc()
	assert.True(t, ok)
	assert.Equal(t, randr.Crtc(12), crtc)

	// Unbound
	hdmi.Release()
	_, ok = hdmi.Crtc()
	assert.False(t, ok)
	assert.Equal(t, []randr.Crtc{13, 12}, s.AvailableCrtcs())
}

func Test_SetOutputMode(t *testing.T) {
	fs, _ := newMonitorTestServer()
	s := newTestSession(t, fs)
	hdmi := s.Monitor("HDMI1")
	require.NoError(t, hdmi.Reconfigure())

	require.NoError(t, hdmi.SetOutputMode(101))
	assert.Equal(t, uint16(1280), hdmi.binding.width)
	assert.Equal(t, uint16(1024), hdmi.binding.height)

	require.NoError(t, hdmi.SetOutputMode(100))
	assert.Equal(t, uint16(1920), hdmi.binding.width)
	assert.Equal(t, uint16(1080), hdmi.binding.height)
	mode, ok := hdmi.CurrentMode()
	assert.True(t, ok)
	assert.Equal(t, "1920x1080@60.00", mode.String())

	// 不支持的 mode
	assert.False(t, hdmi.IsOutputModeSupported(102))
	assert.ErrorIs(t, hdmi.SetOutputMode(102), ErrInvalidMode)
	// 支持但是查询不到信息
	assert.True(t, hdmi.IsOutputModeSupported(999))
	assert.ErrorIs(t, hdmi.SetOutputMode(999), ErrInvalidMode)

	mode, ok = hdmi.CurrentMode()
	assert.True(t, ok)
	assert.Equal(t, uint32(100), mode.Id)
	assert.Equal(t, randr.Mode(100), hdmi.binding.mode)
	assert.Equal(t, uint16(1080), hdmi.binding.height)
}

func Test_PreferredOutputMode(t *testing.T) {
	fs, _ := newMonitorTestServer()
	fs.outputs[2].NumPreferred = 2
	s := newTestSession(t, fs)

	mode, err := s.Monitor("HDMI1").PreferredOutputMode()
	assert.NoError(t, err)
	assert.Equal(t, randr.Mode(100), mode)

	mode, err = s.Monitor("eDP1").PreferredOutputMode()
	assert.NoError(t, err)
	assert.Equal(t, randr.Mode(100), mode)

	_, err = s.Monitor("DP1").PreferredOutputMode()
	assert.ErrorIs(t, err, ErrNoPreferredMode)
}

func Test_SetNeighbor(t *testing.T) {
	fs, _ := newMonitorTestServer()
	s := newTestSession(t, fs)
	a := s.Monitor("eDP1")
	b := s.Monitor("HDMI1")
	c := s.Monitor("DP1")

	require.NoError(t, a.SetNeighbor(DirectionRight, b))
	require.NoError(t, b.SetNeighbor(DirectionRight, c))
	assert.Equal(t, b, a.Neighbor(DirectionRight))
	assert.Nil(t, a.Neighbor(DirectionLeft))

	assert.ErrorIs(t, c.SetNeighbor(DirectionRight, a), ErrTopologyCycle)
	assert.ErrorIs(t, a.SetNeighbor(DirectionTop, a), ErrTopologyCycle)
	assert.Nil(t, c.Neighbor(DirectionRight))

	// 其他方向的链互不影响
	assert.NoError(t, c.SetNeighbor(DirectionLeft, b))

	require.NoError(t, a.SetNeighbor(DirectionRight, nil))
	assert.Nil(t, a.Neighbor(DirectionRight))
	assert.NoError(t, c.SetNeighbor(DirectionRight, a))

	other := newTestSession(t, fs)
	assert.ErrorIs(t, a.SetNeighbor(DirectionBottom, other.Monitor("HDMI1")), ErrForeignMonitor)
	assert.Error(t, a.SetNeighbor(directionCount, b))
}

func Test_SetPrimary(t *testing.T) {
	fs, _ := newMonitorTestServer()
	s := newTestSession(t, fs)
	a := s.Monitor("eDP1")
	b := s.Monitor("HDMI1")

	a.SetPrimary(true)
	assert.Equal(t, a, s.Primary())
	b.SetPrimary(true)
	assert.False(t, a.IsPrimary())
	assert.Equal(t, b, s.Primary())

	s.ResetTopology()
	assert.Nil(t, s.Primary())
}

func Test_crtcConfig(t *testing.T) {
	fs, _ := newMonitorTestServer()
	s := newTestSession(t, fs)
	edp := s.Monitor("eDP1")
	edp.SetPosition(10, 20)

	cfg := edp.crtcConfig()
	assert.Equal(t, CrtcConfig{
		Crtc:     11,
		Outputs:  []randr.Output{1},
		X:        10,
		Y:        20,
		Rotation: randr.RotationRotate0,
		Mode:     100,
	}, cfg)
	assert.False(t, cfg.disabled())

	edp.TurnOff()
	cfg = edp.crtcConfig()
	assert.True(t, cfg.disabled())
	assert.Equal(t, randr.Crtc(11), cfg.Crtc)
	assert.Empty(t, cfg.Outputs)
}
