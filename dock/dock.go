// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package dock reads the state of the ThinkPad docking station the kernel
// exposes through sysfs.
package dock

import (
	"bytes"
	"io"
	"os"

	"github.com/jouyouyun/hardware/dmi"
	"github.com/linuxdeepin/go-lib/log"
)

var logger = log.NewLogger("thinkdock/dock")

const (
	DefaultDockedFile   = "/sys/devices/platform/dock.2/docked"
	DefaultModaliasFile = "/sys/devices/platform/dock.2/modalias"

	// ibmDockId is the modalias of the IBM/Lenovo ACPI dock.
	ibmDockId = "acpi:IBM0079:PNP0C15:LNXDOCK:"
)

func SetLogLevel(level log.Priority) {
	logger.SetLogLevel(level)
}

type Dock struct {
	dockedFile   string
	modaliasFile string
}

// New returns a Dock reading the given files, empty names fall back to the
// default sysfs paths.
func New(dockedFile, modaliasFile string) *Dock {
	if dockedFile == "" {
		dockedFile = DefaultDockedFile
	}
	if modaliasFile == "" {
		modaliasFile = DefaultModaliasFile
	}
	return &Dock{
		dockedFile:   dockedFile,
		modaliasFile: modaliasFile,
	}
}

func (d *Dock) DockedFile() string {
	return d.dockedFile
}

// IsDocked reports whether the laptop sits in the dock. Any I/O error
// counts as not docked.
func (d *Dock) IsDocked() bool {
	// #nosec G304
	f, err := os.Open(d.dockedFile)
	if err != nil {
		logger.Debug(err)
		return false
	}
	defer func() {
		_ = f.Close()
	}()

	var status [1]byte
	_, err = io.ReadFull(f, status[:])
	if err != nil {
		logger.Debugf("read %s failed: %v", d.dockedFile, err)
		return false
	}
	return status[0] == '1'
}

// Probe reports whether the dock device is present and is the IBM dock.
func (d *Dock) Probe() bool {
	// #nosec G304
	content, err := os.ReadFile(d.modaliasFile)
	if err != nil {
		logger.Debug(err)
		return false
	}
	return string(bytes.TrimSpace(content)) == ibmDockId
}

type HostInfo struct {
	ProductName    string
	ProductVersion string
	BoardVendor    string
}

// GetHostInfo returns the DMI identification of the machine, an empty
// HostInfo when it is not readable.
func GetHostInfo() HostInfo {
	info, err := dmi.GetDMI()
	if err != nil {
		logger.Warning(err)
		return HostInfo{}
	}
	return HostInfo{
		ProductName:    info.ProductName,
		ProductVersion: info.ProductVersion,
		BoardVendor:    info.BoardVendor,
	}
}
