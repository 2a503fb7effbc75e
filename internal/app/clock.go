package app

import (
	"time"

	"github.com/obvos/obvos/internal/config"
)

// Clock formats the current time for the taskbar and the date command.
type Clock struct {
	Location *time.Location
	Layout   string
	now      func() time.Time
}

// NewClock returns a clock using the configured zone and format.
func NewClock(cfg *config.UserConfig) *Clock {
	layout := cfg.Desktop.ClockFormat
	if layout == "" {
		layout = config.DefaultClockFormat
	}
	return &Clock{Location: cfg.Location(), Layout: layout, now: time.Now}
}

// Now implements shell.Clock.
func (c *Clock) Now() string {
	return c.Time().Format(c.Layout)
}

// Time returns the current time in the clock's zone.
func (c *Clock) Time() time.Time {
	now := c.now
	if now == nil {
		now = time.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}
