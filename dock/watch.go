// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package dock

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultPollInterval = 2 * time.Second

// Watch blocks until ctx is done and calls fn each time the docked state
// changes. Most sysfs attributes never produce inotify events, so the file is
// also polled every interval.
func (d *Dock) Watch(ctx context.Context, interval time.Duration, fn func(docked bool)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	var events chan fsnotify.Event
	var errs chan error
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warning("create file watcher failed:", err)
	} else {
		defer func() {
			_ = watcher.Close()
		}()
		err = watcher.Add(d.dockedFile)
		if err != nil {
			logger.Warningf("watch %s failed, polling only: %v", d.dockedFile, err)
		} else {
			events = watcher.Events
			errs = watcher.Errors
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	docked := d.IsDocked()
	logger.Info("docked:", docked)
	check := func() {
		newDocked := d.IsDocked()
		if newDocked == docked {
			return
		}
		docked = newDocked
		logger.Info("docked state changed:", docked)
		fn(docked)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Debug("[Fsnotify] quit watch")
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			logger.Debug("[Fsnotify] event:", ev)
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				check()
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warning("receive file watcher error:", err)
		case <-ticker.C:
			check()
		}
	}
}
