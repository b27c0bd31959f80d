// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package display1

import (
	"errors"
	"fmt"

	x "github.com/linuxdeepin/go-x11-client"
	"github.com/linuxdeepin/go-x11-client/ext/randr"
)

// XServer talks RandR 1.2+ to an X server over one connection. It remembers
// the config timestamp of the last screen resources snapshot and uses it
// for every later request.
type XServer struct {
	conn  *x.Conn
	root  x.Window
	cfgTs x.Timestamp
}

func NewXServer(conn *x.Conn) (*XServer, error) {
	version, err := randr.QueryVersion(conn, randr.MajorVersion, randr.MinorVersion).Reply(conn)
	if err != nil {
		return nil, err
	}
	logger.Debugf("randr version %d.%d", version.ServerMajorVersion, version.ServerMinorVersion)
	if version.ServerMajorVersion < 1 ||
		(version.ServerMajorVersion == 1 && version.ServerMinorVersion < 2) {
		return nil, errors.New("randr 1.2 or newer is required")
	}

	return &XServer{
		conn: conn,
		root: conn.GetDefaultScreen().Root,
	}, nil
}

func (s *XServer) GetScreenResources() (*ScreenResources, error) {
	resources, err := randr.GetScreenResourcesCurrent(s.conn, s.root).Reply(s.conn)
	if err != nil {
		return nil, err
	}
	s.cfgTs = resources.ConfigTimestamp

	return &ScreenResources{
		Crtcs:   resources.Crtcs,
		Outputs: resources.Outputs,
		Modes:   toModeInfos(resources.Modes),
	}, nil
}

func (s *XServer) GetOutputInfo(output randr.Output) (*OutputPort, error) {
	reply, err := randr.GetOutputInfo(s.conn, output, s.cfgTs).Reply(s.conn)
	if err != nil {
		return nil, err
	}
	if reply.Status != randr.StatusSuccess {
		return nil, fmt.Errorf("status is not success, is %v", reply.Status)
	}

	port := &OutputPort{
		ID:        output,
		Name:      reply.Name,
		Crtc:      reply.Crtc,
		Connected: reply.Connection == randr.ConnectionConnected,
		MmWidth:   reply.MmWidth,
		MmHeight:  reply.MmHeight,
		Modes:     reply.Modes,
	}
	preferred := reply.GetPreferredMode()
	if preferred != 0 {
		for idx, mode := range reply.Modes {
			if mode == preferred {
				port.NumPreferred = idx + 1
				break
			}
		}
	}
	return port, nil
}

func (s *XServer) GetCrtcInfo(crtc randr.Crtc) (*CrtcInfo, error) {
	reply, err := randr.GetCrtcInfo(s.conn, crtc, s.cfgTs).Reply(s.conn)
	if err != nil {
		return nil, err
	}
	if reply.Status != randr.StatusSuccess {
		return nil, fmt.Errorf("status is not success, is %v", reply.Status)
	}
	return &CrtcInfo{
		X:               reply.X,
		Y:               reply.Y,
		Width:           reply.Width,
		Height:          reply.Height,
		Mode:            reply.Mode,
		Rotation:        reply.Rotation,
		Outputs:         reply.Outputs,
		PossibleOutputs: reply.PossibleOutputs,
	}, nil
}

func (s *XServer) SetCrtcConfig(cfg CrtcConfig) error {
	logger.Debugf("setCrtcConfig crtc: %v, cfgTs: %v, x: %v, y: %v,"+
		" mode: %v, rotation: %v, outputs: %v",
		cfg.Crtc, s.cfgTs, cfg.X, cfg.Y, cfg.Mode, cfg.Rotation, cfg.Outputs)
	reply, err := randr.SetCrtcConfig(s.conn, cfg.Crtc, 0, s.cfgTs,
		cfg.X, cfg.Y, cfg.Mode, cfg.Rotation, cfg.Outputs).Reply(s.conn)
	if err != nil {
		return err
	}
	if reply.Status != randr.SetConfigSuccess {
		return fmt.Errorf("failed to configure crtc %v: %v",
			cfg.Crtc, getRandrStatusStr(reply.Status))
	}
	return nil
}

func (s *XServer) SetOutputPrimary(output randr.Output) error {
	logger.Debug("set output primary", output)
	return randr.SetOutputPrimaryChecked(s.conn, s.root, output).Check(s.conn)
}

func (s *XServer) SetScreenSize(size VirtualScreen) error {
	logger.Debugf("set screen size %dx%d, mm: %dx%d",
		size.Width, size.Height, size.MmWidth, size.MmHeight)
	return randr.SetScreenSizeChecked(s.conn, s.root, size.Width, size.Height,
		size.MmWidth, size.MmHeight).Check(s.conn)
}

func (s *XServer) GrabServer() error {
	return x.GrabServerChecked(s.conn).Check(s.conn)
}

func (s *XServer) UngrabServer() error {
	return x.UngrabServerChecked(s.conn).Check(s.conn)
}

// Sync does a round trip, every request sent before it has been processed
// once the reply arrives.
func (s *XServer) Sync() error {
	_, err := x.GetInputFocus(s.conn).Reply(s.conn)
	return err
}

func getRandrStatusStr(status uint8) string {
	switch status {
	case randr.SetConfigSuccess:
		return "success"
	case randr.SetConfigFailed:
		return "failed"
	case randr.SetConfigInvalidConfigTime:
		return "invalid config time"
	case randr.SetConfigInvalidTime:
		return "invalid time"
	default:
		return fmt.Sprintf("unknown status %d", status)
	}
}
