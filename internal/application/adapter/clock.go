// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock supplies the current time so billing dates can be controlled in tests.
type Clock interface {
	Now() time.Time
}
