// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package power

import (
	"errors"
	"sync"
	"time"

	syspower "github.com/linuxdeepin/go-dbus-factory/system/org.deepin.dde.power1"
)

const lidSwitchDelay = 1500 * time.Millisecond

// LidSwitchHandler turns lid close signals into suspend requests. Signals
// arriving within delay of each other only count once, the last one wins.
type LidSwitchHandler struct {
	manager *Manager
	delay   time.Duration

	mu            sync.Mutex
	cookie        chan struct{}
	isLidOpenLast bool // 上一次有效操作是否是开盖
}

func NewLidSwitchHandler(m *Manager) *LidSwitchHandler {
	return &LidSwitchHandler{
		manager:       m,
		delay:         lidSwitchDelay,
		isLidOpenLast: true,
	}
}

// Start connects to the lid signals of the power daemon.
func (h *LidSwitchHandler) Start(power syspower.Power) error {
	hasLid, err := power.HasLidSwitch().Get(0)
	if err != nil {
		return err
	}
	if !hasLid {
		return errors.New("no lid switch")
	}

	_, err = power.ConnectLidClosed(h.onLidClosed)
	if err != nil {
		return err
	}
	_, err = power.ConnectLidOpened(h.onLidOpened)
	return err
}

func (h *LidSwitchHandler) onLidClosed() {
	logger.Debug("lid closed signal")
	h.onLidDelayOperate(false)
}

func (h *LidSwitchHandler) onLidOpened() {
	logger.Debug("lid open signal")
	h.onLidDelayOperate(true)
}

func (h *LidSwitchHandler) onLidDelayOperate(state bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cookie != nil {
		h.cookie <- struct{}{}
		close(h.cookie)
	}
	cookie := make(chan struct{}, 1)
	h.cookie = cookie

	go func() {
		select {
		case <-cookie:
		case <-time.After(h.delay):
			h.mu.Lock()
			if h.cookie != cookie {
				// 已被新的信号取代
				h.mu.Unlock()
				return
			}
			h.cookie = nil
			h.mu.Unlock()
			h.doLidStateChanged(state)
		}
	}()
}

func (h *LidSwitchHandler) doLidStateChanged(state bool) {
	logger.Info("Lid open:", state)
	h.mu.Lock()
	if h.isLidOpenLast == state {
		h.mu.Unlock()
		logger.Info("ignore operate")
		return
	}
	h.isLidOpenLast = state
	h.mu.Unlock()

	if !state {
		h.manager.RequestSuspend(SuspendReasonLid)
	}
}
