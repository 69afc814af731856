// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zudd

import (
	"errors"
	"fmt"
)

// Error returns the error status of the manager, or the empty string.
func (m *Manager) Error() string {
	if err := m.Err(); err != nil {
		return err.Error()
	}
	return ""
}

// Errored returns true if there was an error during a computation.
func (m *Manager) Errored() bool {
	return m.Err() != nil
}

// Err returns the sticky error of the manager. The result wraps one of the
// sentinel errors, such as ErrOutOfMemory, and can be tested with errors.Is.
func (m *Manager) Err() error {
	m.errmu.Lock()
	defer m.errmu.Unlock()
	return m.error
}

// ClearError resets the sticky error.
func (m *Manager) ClearError() {
	m.errmu.Lock()
	m.error = nil
	m.errmu.Unlock()
}

// seterror records an error built from a sentinel and returns it. Successive
// errors are chained so that the first cause is never lost.
func (m *Manager) seterror(sentinel error, format string, a ...interface{}) error {
	err := fmt.Errorf("%w: "+format, append([]interface{}{sentinel}, a...)...)
	m.errmu.Lock()
	if m.error != nil {
		m.error = errors.Join(m.error, err)
	} else {
		m.error = err
	}
	m.errmu.Unlock()
	if errors.Is(sentinel, ErrOutOfMemory) {
		m.log.Warn("out of memory", "cause", err)
	}
	return err
}
