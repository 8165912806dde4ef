package life

// Clock is the simulation's notion of time, passed by value through each step
type Clock struct {
	Frame uint64  // frames stepped so far
	Time  float64 // simulated seconds
}

// Tick returns the clock one frame of dt later
func (c Clock) Tick(dt float64) Clock {
	return Clock{Frame: c.Frame + 1, Time: c.Time + dt}
}
