// export_test.go exports private functions for white-box testing.
package discovery

import "time"

// SetClock replaces the clock stamping scannedAt.
func (d *Discoverer) SetClock(now func() time.Time) {
	d.now = now
}
