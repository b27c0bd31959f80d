// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package display1

import (
	"fmt"

	"github.com/linuxdeepin/go-x11-client/ext/randr"
)

// DisplayServer is everything the layout engine needs from the display
// server. Every call blocks until the server answers.
type DisplayServer interface {
	GetScreenResources() (*ScreenResources, error)
	GetOutputInfo(output randr.Output) (*OutputPort, error)
	GetCrtcInfo(crtc randr.Crtc) (*CrtcInfo, error)
	SetCrtcConfig(cfg CrtcConfig) error
	SetOutputPrimary(output randr.Output) error
	SetScreenSize(size VirtualScreen) error
	// GrabServer suspends the processing of requests of every other client
	// until UngrabServer is called.
	GrabServer() error
	UngrabServer() error
	// Sync waits until the server has processed every request sent so far.
	Sync() error
}

// ScreenResources is one snapshot of the ids the server exposes, in server
// order.
type ScreenResources struct {
	Crtcs   []randr.Crtc
	Outputs []randr.Output
	Modes   []ModeInfo
}

// OutputPort is one physical connector.
type OutputPort struct {
	ID        randr.Output
	Name      string
	Crtc      randr.Crtc
	Connected bool
	MmWidth   uint32
	MmHeight  uint32
	// Modes lists the supported modes, the first NumPreferred of them are
	// preferred.
	Modes        []randr.Mode
	NumPreferred int
}

func (op *OutputPort) String() string {
	return fmt.Sprintf("<Output id=%d name=%s>", op.ID, op.Name)
}

type CrtcInfo struct {
	X               int16
	Y               int16
	Width           uint16
	Height          uint16
	Mode            randr.Mode
	Rotation        uint16
	Outputs         []randr.Output
	PossibleOutputs []randr.Output
}

// CrtcConfig is what a single SetCrtcConfig request carries. A config with
// no outputs and mode 0 disables the crtc.
type CrtcConfig struct {
	Crtc    randr.Crtc
	Outputs []randr.Output

	X        int16
	Y        int16
	Rotation uint16
	Mode     randr.Mode
}

func (cfg CrtcConfig) disabled() bool {
	return cfg.Mode == 0 || len(cfg.Outputs) == 0
}

// VirtualScreen is the size of the single canvas every crtc scans out of.
type VirtualScreen struct {
	Width    uint16
	Height   uint16
	MmWidth  uint32
	MmHeight uint32
}
