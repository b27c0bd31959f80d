// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"

	x "github.com/linuxdeepin/go-x11-client"
	"github.com/linuxdeepin/thinkdock-daemon/common/layoutconfig"
	"github.com/linuxdeepin/thinkdock-daemon/display1"
	"github.com/linuxdeepin/thinkdock-daemon/dock"
	"github.com/linuxdeepin/thinkdock-daemon/session/power"
	"github.com/spf13/cobra"
)

var dockedCmd = &cobra.Command{
	Use:   "docked",
	Short: "Print whether the laptop is docked",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Println(newDock(cfg).IsDocked())
		return nil
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Print whether the dock hardware is present and sane",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Println(newDock(cfg).Probe())
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the machine and dock state",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		d := newDock(cfg)
		host := dock.GetHostInfo()
		fmt.Printf("product: %s %s (%s)\n", host.ProductVersion, host.ProductName, host.BoardVendor)
		fmt.Printf("dock present: %v\n", d.Probe())
		fmt.Printf("docked: %v\n", d.IsDocked())
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the outputs and the crtcs driving them",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *display1.Session) error {
			for _, m := range s.Monitors() {
				printMonitor(m)
			}
			fmt.Printf("available crtcs: %v\n", s.AvailableCrtcs())
			return nil
		})
	},
}

func printMonitor(m *display1.Monitor) {
	state := "disconnected"
	if m.IsConnected() {
		state = "connected"
	}
	fmt.Printf("%s %s", m.Name(), state)
	if crtc, ok := m.Crtc(); ok {
		fmt.Printf(" crtc %d", crtc)
		if mode, ok := m.CurrentMode(); ok {
			posX, posY := m.Position()
			fmt.Printf(" %v+%d+%d", mode, posX, posY)
		} else {
			fmt.Print(" off")
		}
	}
	mmWidth, mmHeight := m.PhysicalSize()
	fmt.Printf(" %dmm x %dmm\n", mmWidth, mmHeight)
}

var applyCmd = &cobra.Command{
	Use:       "apply [docked|undocked|auto]",
	Short:     "Apply a layout profile",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{layoutconfig.ProfileDocked, layoutconfig.ProfileUndocked, "auto"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		name := "auto"
		if len(args) > 0 {
			name = args[0]
		}

		var docked bool
		switch name {
		case "auto":
			docked = newDock(cfg).IsDocked()
		case layoutconfig.ProfileDocked:
			docked = true
		case layoutconfig.ProfileUndocked:
			docked = false
		default:
			return fmt.Errorf("unknown profile %q", name)
		}

		return withSession(func(s *display1.Session) error {
			return applyProfile(s, cfg, docked)
		})
	},
}

var suspendReason string

var suspendCmd = &cobra.Command{
	Use:   "suspend",
	Short: "Suspend, for a lid close only when not docked",
	RunE: func(cmd *cobra.Command, args []string) error {
		reason, err := power.ParseSuspendReason(suspendReason)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		manager, helper := newPowerManager(cfg)
		if helper != nil {
			defer helper.Destroy()
		}
		if !manager.RequestSuspend(reason) {
			return fmt.Errorf("suspend request (%v) not honored", reason)
		}
		return nil
	},
}

func init() {
	suspendCmd.Flags().StringVar(&suspendReason, "reason", "button", "Why to suspend: lid or button")
}

func newPowerManager(cfg *layoutconfig.Config) (*power.Manager, *power.Helper) {
	helper, err := power.NewHelper()
	if err != nil {
		logger.Warning("connecting to D-Bus failed:", err)
		return power.NewManager(nil, newDock(cfg)), nil
	}
	return power.NewManager(helper.LoginManager, newDock(cfg)), helper
}

func withSession(fn func(s *display1.Session) error) error {
	conn, err := x.NewConn()
	if err != nil {
		return err
	}
	defer conn.Close()

	server, err := display1.NewXServer(conn)
	if err != nil {
		return err
	}
	s, err := display1.NewSession(server)
	if err != nil {
		return err
	}
	return fn(s)
}

func applyProfile(s *display1.Session, cfg *layoutconfig.Config, docked bool) error {
	profile := cfg.Profile(docked)
	if profile == nil {
		return fmt.Errorf("no profile configured for docked=%v", docked)
	}
	logger.Infof("apply profile for docked=%v, primary %s", docked, profile.Primary)
	return s.ApplyProfile(profile)
}
