// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package display1 allocates RandR CRTCs to monitors, lays the monitors out
// around a primary one and commits the result to the X server in one batch.
package display1

import (
	"github.com/linuxdeepin/go-lib/log"
)

var logger = log.NewLogger("thinkdock/display")

func SetLogLevel(level log.Priority) {
	logger.SetLogLevel(level)
}

func isDebugLevel() bool {
	return logger.GetLogLevel() == log.LevelDebug
}
