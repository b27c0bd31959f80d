// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/linuxdeepin/go-lib/log"
	"github.com/linuxdeepin/thinkdock-daemon/common/layoutconfig"
	"github.com/linuxdeepin/thinkdock-daemon/display1"
	"github.com/linuxdeepin/thinkdock-daemon/dock"
	"github.com/linuxdeepin/thinkdock-daemon/session/power"
	"github.com/spf13/cobra"
)

var logger = log.NewLogger("thinkdock")

var _options struct {
	verbose    bool
	logLevel   string
	configFile string
}

var rootCmd = &cobra.Command{
	Use:   "thinkdock",
	Short: "Lay out monitors of a ThinkPad when it is docked or undocked",
	Long: `thinkdock arranges the monitors of a laptop around a primary one,
using the RandR extension of the X server, and suspends on lid close
unless the laptop sits in its dock.

Layouts are read from ` + layoutconfig.DefaultPath() + `.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _options.verbose {
			_options.logLevel = "debug"
		}
		level, err := toLogLevel(_options.logLevel)
		if err != nil {
			return err
		}
		logger.SetLogLevel(level)
		display1.SetLogLevel(level)
		dock.SetLogLevel(level)
		power.SetLogLevel(level)
		return nil
	},
}

func toLogLevel(name string) (log.Priority, error) {
	name = strings.ToLower(name)
	logLevel := log.LevelInfo
	var err error
	switch name {
	case "":
		logLevel = log.LevelInfo
	case "error":
		logLevel = log.LevelError
	case "warn":
		logLevel = log.LevelWarning
	case "info":
		logLevel = log.LevelInfo
	case "debug":
		logLevel = log.LevelDebug
	case "no":
		logLevel = log.LevelDisable
	default:
		err = fmt.Errorf("%s is not support", name)
	}

	return logLevel, err
}

func loadConfig() (*layoutconfig.Config, error) {
	return layoutconfig.Load(_options.configFile)
}

func newDock(cfg *layoutconfig.Config) *dock.Dock {
	return dock.New(cfg.Dock.DockedFile, cfg.Dock.ModaliasFile)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&_options.verbose, "verbose", "v", false,
		"Show much more message, shorthand for --loglevel debug.")
	flags.StringVarP(&_options.logLevel, "loglevel", "l", "",
		"Set log level, possible value is error/warn/info/debug/no, info is default")
	flags.StringVarP(&_options.configFile, "config", "c", layoutconfig.DefaultPath(),
		"Layout configuration file")

	rootCmd.AddCommand(dockedCmd, probeCmd, infoCmd, listCmd, applyCmd, suspendCmd, watchCmd)
}

func main() {
	logger.SetLogLevel(log.LevelInfo)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
