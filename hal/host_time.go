package hal

import "time"

// frameClock publishes the elapsed time as a millisecond sequence, one value
// per frame. Consumers diff consecutive values to get the frame delta.
type frameClock struct {
	ch  chan uint64
	now func() time.Time

	ms   uint64
	last time.Time
	rem  time.Duration
}

func newFrameClock(now func() time.Time) *frameClock {
	if now == nil {
		now = time.Now
	}
	return &frameClock{ch: make(chan uint64, 64), now: now}
}

func (c *frameClock) Ticks() <-chan uint64 { return c.ch }

// advance is called once per frame. The first call publishes 0.
func (c *frameClock) advance() {
	t := c.now()
	if !c.last.IsZero() {
		c.rem += t.Sub(c.last)
		c.ms += uint64(c.rem / time.Millisecond)
		c.rem %= time.Millisecond
	}
	c.last = t
	c.publish(c.ms)
}

// publish keeps the newest values when nobody drains the channel.
func (c *frameClock) publish(v uint64) {
	for {
		select {
		case c.ch <- v:
			return
		default:
		}
		select {
		case <-c.ch:
		default:
		}
	}
}
