// internal/sched/tickclock.go

package sched

import "fmt"

// TickClock is the virtual clock of one simulation run.
// It only moves forward, in whole ticks.
type TickClock struct {
	now  int
	idle int
	busy int
}

// Now returns the current tick.
func (c *TickClock) Now() int { return c.now }

// Idle advances the clock by one tick with nothing on the CPU.
func (c *TickClock) Idle() {
	c.now++
	c.idle++
}

// Run advances the clock by a slice of CPU time.
func (c *TickClock) Run(slice int) {
	if slice <= 0 {
		panic(fmt.Sprintf("sched: clock advanced by non-positive slice %d", slice))
	}
	c.now += slice
	c.busy += slice
}

// IdleTicks returns the number of ticks the CPU sat idle.
func (c *TickClock) IdleTicks() int { return c.idle }

// BusyTicks returns the number of ticks spent running processes.
func (c *TickClock) BusyTicks() int { return c.busy }
