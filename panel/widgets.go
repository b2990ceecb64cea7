package panel

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Widget is one row of the control panel bound to a single field.
type Widget interface {
	Name() string
	// Value formats the bound field for display.
	Value() string
	// Step moves the value by delta notches; coarse uses a larger notch
	// where the widget has one.
	Step(delta int, coarse bool)
	// Activate handles Enter/Space.
	Activate()
}

// Choice binds a string field to a fixed list of options. The bound value
// can only ever be set to one of them.
type Choice struct {
	name    string
	options []string
	get     func() string
	set     func(string)
}

func NewChoice(name string, options []string, get func() string, set func(string)) *Choice {
	return &Choice{name: name, options: options, get: get, set: set}
}

func (c *Choice) Name() string  { return c.name }
func (c *Choice) Value() string { return c.get() }

// Options returns the selectable labels in display order.
func (c *Choice) Options() []string { return c.options }

func (c *Choice) index() int {
	cur := c.get()
	for i, o := range c.options {
		if o == cur {
			return i
		}
	}
	return 0
}

// Step moves through the options, stopping at either end.
func (c *Choice) Step(delta int, coarse bool) {
	if len(c.options) == 0 {
		return
	}
	i := c.index() + delta
	if i < 0 {
		i = 0
	}
	if i >= len(c.options) {
		i = len(c.options) - 1
	}
	c.set(c.options[i])
}

func (c *Choice) Activate() { c.Step(1, false) }

// Slider binds a float field to a closed range.
type Slider struct {
	name     string
	min, max float32
	step     float32
	get      func() float32
	set      func(float32)
}

func NewSlider(name string, min, max, step float32, get func() float32, set func(float32)) *Slider {
	return &Slider{name: name, min: min, max: max, step: step, get: get, set: set}
}

func (s *Slider) Name() string  { return s.name }
func (s *Slider) Value() string { return fmt.Sprintf("%.2f", s.get()) }

func (s *Slider) Step(delta int, coarse bool) {
	step := s.step
	if coarse {
		step *= 10
	}
	s.set(mgl32.Clamp(s.get()+float32(delta)*step, s.min, s.max))
}

func (s *Slider) Activate() {}

// Checkbox binds a bool field.
type Checkbox struct {
	name string
	get  func() bool
	set  func(bool)
}

func NewCheckbox(name string, get func() bool, set func(bool)) *Checkbox {
	return &Checkbox{name: name, get: get, set: set}
}

func (c *Checkbox) Name() string { return c.name }

func (c *Checkbox) Value() string {
	if c.get() {
		return "[x]"
	}
	return "[ ]"
}

func (c *Checkbox) Step(delta int, coarse bool) {
	if delta != 0 {
		c.set(!c.get())
	}
}

func (c *Checkbox) Activate() { c.set(!c.get()) }
