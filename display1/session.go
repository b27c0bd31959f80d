// SPDX-FileCopyrightText: 2026 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package display1

import (
	"github.com/linuxdeepin/go-x11-client/ext/randr"
)

// Session is one reconfiguration cycle: a catalog snapshot, the crtc pool
// seeded from it and one Monitor per output port. Only one session may be
// in flight per display connection.
type Session struct {
	server   DisplayServer
	catalog  *ResourceCatalog
	pool     *crtcPool
	monitors []*Monitor

	// limits is dropped whenever the topology or a member mode changes.
	limits *screenLimits
}

func NewSession(server DisplayServer) (*Session, error) {
	catalog, err := NewResourceCatalog(server)
	if err != nil {
		return nil, err
	}

	s := &Session{
		server:  server,
		catalog: catalog,
		pool:    newCrtcPool(catalog.Crtcs()),
	}
	outputs := catalog.Outputs()
	s.monitors = make([]*Monitor, 0, len(outputs))
	for idx, port := range outputs {
		s.monitors = append(s.monitors, newMonitor(s, idx, port))
	}
	logger.Debugf("new session: %d crtcs, %d outputs, %d modes, available crtcs %v",
		len(catalog.crtcs), len(outputs), len(catalog.modes), s.pool.availableCrtcs())
	return s, nil
}

func (s *Session) Catalog() *ResourceCatalog {
	return s.catalog
}

// Monitors returns the monitors in catalog order.
func (s *Session) Monitors() []*Monitor {
	return append([]*Monitor(nil), s.monitors...)
}

func (s *Session) Monitor(name string) *Monitor {
	for _, m := range s.monitors {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

func (s *Session) ConnectedMonitors() []*Monitor {
	var result []*Monitor
	for _, m := range s.monitors {
		if m.IsConnected() {
			result = append(result, m)
		}
	}
	return result
}

func (s *Session) Primary() *Monitor {
	for _, m := range s.monitors {
		if m.primary {
			return m
		}
	}
	return nil
}

func (s *Session) AvailableCrtcs() []randr.Crtc {
	return s.pool.availableCrtcs()
}

func (s *Session) ResetTopology() {
	for _, m := range s.monitors {
		m.clearNeighbors()
		m.SetPrimary(false)
	}
}

// walk calls fn for every monitor of the chain leaving m in direction dir,
// nearest first. m itself is not visited.
func (s *Session) walk(m *Monitor, dir Direction, fn func(*Monitor)) {
	for cur := m.Neighbor(dir); cur != nil; cur = cur.Neighbor(dir) {
		fn(cur)
	}
}

func (s *Session) invalidateLimits() {
	s.limits = nil
}
