// Package bus wraps the D-Bus connection behind the handful of
// operations dbusls consumes.
package bus

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Kind selects which bus to connect to.
type Kind string

const (
	System  Kind = "system"
	Session Kind = "session"
)

// Conn is a private connection to the selected bus.
type Conn struct {
	conn *dbus.Conn
}

// Connect opens a private connection to the given bus.
func Connect(kind Kind) (*Conn, error) {
	var (
		conn *dbus.Conn
		err  error
	)
	switch kind {
	case System:
		conn, err = dbus.ConnectSystemBus()
	case Session:
		conn, err = dbus.ConnectSessionBus()
	default:
		return nil, fmt.Errorf("unknown bus kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s bus: %w", kind, err)
	}
	return &Conn{conn: conn}, nil
}

// Close releases the underlying connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// ListNames returns the names currently connected to the bus.
func (c *Conn) ListNames() ([]string, error) {
	var names []string
	if err := c.conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		return nil, fmt.Errorf("list bus names: %w", err)
	}
	return names, nil
}

// ListActivatableNames returns the names the bus can start on demand.
func (c *Conn) ListActivatableNames() ([]string, error) {
	var names []string
	if err := c.conn.BusObject().Call("org.freedesktop.DBus.ListActivatableNames", 0).Store(&names); err != nil {
		return nil, fmt.Errorf("list activatable names: %w", err)
	}
	return names, nil
}

// ProcessID resolves a bus name to the pid of its owning process.
func (c *Conn) ProcessID(name string) (uint32, error) {
	var pid uint32
	err := c.conn.BusObject().Call("org.freedesktop.DBus.GetConnectionUnixProcessID", 0, name).Store(&pid)
	if err != nil {
		return 0, err
	}
	return pid, nil
}

// Introspect returns the raw introspection XML for one object path on
// one service. Calling this on an activatable but not running service
// makes the bus start it.
func (c *Conn) Introspect(service, path string) (string, error) {
	var data string
	obj := c.conn.Object(service, dbus.ObjectPath(path))
	if err := obj.Call("org.freedesktop.DBus.Introspectable.Introspect", 0).Store(&data); err != nil {
		return "", err
	}
	return data, nil
}
