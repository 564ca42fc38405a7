package flashprog

// ChaseStep is how long each LED stays lit in the idle chase.
const ChaseStep = 300 // ms

// Output is a GPIO driven by the chase.
type Output interface {
	Set(level bool)
}

// Chase cycles the three board LEDs while the bootloader waits for the
// host, so a resident bootloader is visible at a glance.
type Chase struct {
	leds [3]Output
	last int
}

func NewChase(pg, ch, st Output) *Chase {
	return &Chase{leds: [3]Output{pg, ch, st}, last: -1}
}

// Update advances the chase for the current time in ms.
func (c *Chase) Update(now uint32) {
	cur := int(now/ChaseStep) % 3
	if cur == c.last {
		return
	}
	c.leds[(cur+2)%3].Set(false)
	c.leds[cur].Set(true)
	c.last = cur
}
