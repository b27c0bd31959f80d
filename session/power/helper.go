// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package power

import (
	"github.com/godbus/dbus/v5"
	syspower "github.com/linuxdeepin/go-dbus-factory/system/org.deepin.dde.power1"
	login1 "github.com/linuxdeepin/go-dbus-factory/system/org.freedesktop.login1"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/dbusutil/proxy"
)

// Helper holds the system bus proxies the power package talks to.
type Helper struct {
	LoginManager login1.Manager
	Power        syspower.Power // sig

	sysSigLoop *dbusutil.SignalLoop
}

func NewHelper() (*Helper, error) {
	sysBus, err := dbus.SystemBus()
	if err != nil {
		return nil, err
	}
	h := &Helper{
		LoginManager: login1.NewManager(sysBus),
		Power:        syspower.NewPower(sysBus),
		sysSigLoop:   dbusutil.NewSignalLoop(sysBus, 10),
	}
	h.sysSigLoop.Start()
	h.Power.InitSignalExt(h.sysSigLoop, true)
	return h, nil
}

func (h *Helper) Destroy() {
	h.Power.RemoveHandler(proxy.RemoveAllHandlers)
	h.sysSigLoop.Stop()
}
