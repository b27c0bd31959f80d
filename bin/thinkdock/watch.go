// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/linuxdeepin/thinkdock-daemon/display1"
	"github.com/linuxdeepin/thinkdock-daemon/dock"
	"github.com/linuxdeepin/thinkdock-daemon/session/power"
	"github.com/spf13/cobra"
)

var noLid bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-apply the layout whenever the dock state changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		d := newDock(cfg)
		if !d.Probe() {
			logger.Warning("dock is not sane/present, watching anyway")
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if !noLid {
			manager, helper := newPowerManager(cfg)
			if helper != nil {
				defer helper.Destroy()
				err = power.NewLidSwitchHandler(manager).Start(helper.Power)
				if err != nil {
					logger.Warning("failed to watch lid switch:", err)
				}
			}
		}

		apply := func(docked bool) {
			err := withSession(func(s *display1.Session) error {
				return applyProfile(s, cfg, docked)
			})
			if err != nil {
				logger.Warning("apply layout failed:", err)
			}
		}
		apply(d.IsDocked())

		interval := cfg.Dock.PollInterval
		if interval <= 0 {
			interval = dock.DefaultPollInterval
		}
		err = d.Watch(ctx, interval, func(docked bool) {
			logger.Info("dock state changed, docked:", docked)
			apply(docked)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	watchCmd.Flags().BoolVar(&noLid, "no-lid", false, "Do not suspend on lid close")
}
