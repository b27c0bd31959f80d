// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package power suspends the machine through logind and decides whether a
// lid close should suspend it, depending on the dock.
package power

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/log"
)

var logger = log.NewLogger("thinkdock/power")

func SetLogLevel(level log.Priority) {
	logger.SetLogLevel(level)
}

type SuspendReason int

const (
	SuspendReasonButton SuspendReason = iota
	SuspendReasonLid
)

func (r SuspendReason) String() string {
	switch r {
	case SuspendReasonButton:
		return "button"
	case SuspendReasonLid:
		return "lid"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

func ParseSuspendReason(s string) (SuspendReason, error) {
	switch s {
	case "button":
		return SuspendReasonButton, nil
	case "lid":
		return SuspendReasonLid, nil
	default:
		return 0, fmt.Errorf("invalid suspend reason %q", s)
	}
}

var errNoSuspender = errors.New("no suspend mechanism available")

// suspender is the part of org.freedesktop.login1.Manager used here.
type suspender interface {
	Suspend(flags dbus.Flags, interactive bool) error
}

type dockState interface {
	Probe() bool
	IsDocked() bool
}

type Manager struct {
	login suspender
	dock  dockState
}

func NewManager(login suspender, dock dockState) *Manager {
	return &Manager{
		login: login,
		dock:  dock,
	}
}

// Suspend asks logind to suspend now. A failure is logged and returned, it
// is never retried.
func (m *Manager) Suspend() error {
	if m.login == nil {
		logger.Warning(errNoSuspender)
		return errNoSuspender
	}
	logger.Info("suspend")
	err := m.login.Suspend(0, true)
	if err != nil {
		logger.Warning("error calling suspend on logind:", err)
		return err
	}
	return nil
}

// RequestSuspend suspends if reason allows it and reports whether the
// request was honored. The button always suspends. A lid close suspends
// only when the dock is sane and the laptop is not docked.
func (m *Manager) RequestSuspend(reason SuspendReason) bool {
	switch reason {
	case SuspendReasonButton:
		return m.Suspend() == nil

	case SuspendReasonLid:
		if !m.dock.Probe() {
			logger.Warning("dock is not sane/present")
			return false
		}
		if !m.dock.IsDocked() {
			// 与挂起调用的结果无关，合盖请求已被接受
			_ = m.Suspend()
			return true
		}
		logger.Info("ignoring lid event when docked")
		return false

	default:
		logger.Warning("invalid suspend reason", reason)
		return false
	}
}
