// Package input implements controller handling for the NES.
package input

// Button represents NES controller buttons
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Convenience constants for shorter names used by host-side input binding
const (
	A      = ButtonA
	B      = ButtonB
	Select = ButtonSelect
	Start  = ButtonStart
	Up     = ButtonUp
	Down   = ButtonDown
	Left   = ButtonLeft
	Right  = ButtonRight
)

// Controller represents a single NES controller: button state plus the
// strobe/shift-register protocol used to read it one bit at a time.
type Controller struct {
	buttons uint8

	shiftRegister uint8
	strobe        bool

	// buttonSnapshot is the button state latched when strobe went high (or
	// on every read while it's held high); the shift register is reloaded
	// from it each time strobe falls.
	buttonSnapshot uint8
}

// New creates a new Controller instance
func New() *Controller {
	return &Controller{}
}

// SetButton sets the state of a single button.
func (c *Controller) SetButton(button Button, pressed bool) {
	if pressed {
		c.buttons |= uint8(button)
	} else {
		c.buttons &^= uint8(button)
	}
}

// SetButtons sets all button states at once, in NES order: A, B, Select,
// Start, Up, Down, Left, Right.
func (c *Controller) SetButtons(buttons [8]bool) {
	c.buttons = 0
	if buttons[0] {
		c.buttons |= uint8(ButtonA)
	}
	if buttons[1] {
		c.buttons |= uint8(ButtonB)
	}
	if buttons[2] {
		c.buttons |= uint8(ButtonSelect)
	}
	if buttons[3] {
		c.buttons |= uint8(ButtonStart)
	}
	if buttons[4] {
		c.buttons |= uint8(ButtonUp)
	}
	if buttons[5] {
		c.buttons |= uint8(ButtonDown)
	}
	if buttons[6] {
		c.buttons |= uint8(ButtonLeft)
	}
	if buttons[7] {
		c.buttons |= uint8(ButtonRight)
	}
}

// IsPressed returns true if the button is currently pressed
func (c *Controller) IsPressed(button Button) bool {
	return (c.buttons & uint8(button)) != 0
}

// WriteOutput handles the $4016 strobe write shared by both controller
// ports. While strobe is held high the button state is re-sampled on every
// write and read; on the high-to-low transition the shift register is loaded
// from that sample for the read sequence that follows.
func (c *Controller) WriteOutput(value uint8) {
	wasHigh := c.strobe
	c.strobe = (value & 1) != 0
	if c.strobe {
		c.buttonSnapshot = c.buttons
		c.shiftRegister = c.buttons
	} else if wasHigh {
		c.shiftRegister = c.buttonSnapshot
	}
}

// ReadInput shifts out the next bit: A, B, Select, Start, Up, Down, Left,
// Right, then all ones. While strobe is held high it keeps returning the A
// button without advancing.
func (c *Controller) ReadInput() uint8 {
	if c.strobe {
		c.buttonSnapshot = c.buttons
		return c.buttonSnapshot & 1
	}

	bit := c.shiftRegister & 1
	c.shiftRegister = (c.shiftRegister >> 1) | 0x80
	return bit
}

// Reset resets the controller state
func (c *Controller) Reset() {
	c.buttons = 0
	c.shiftRegister = 0
	c.strobe = false
	c.buttonSnapshot = 0
}

// InputState owns both controller ports and the shared $4016 strobe line.
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller
}

// NewInputState creates a new input state with two controllers
func NewInputState() *InputState {
	return &InputState{
		Controller1: New(),
		Controller2: New(),
	}
}

// Reset resets all input devices
func (is *InputState) Reset() {
	is.Controller1.Reset()
	is.Controller2.Reset()
}

// SetButtons1 sets all button states for controller 1 (array approach)
func (is *InputState) SetButtons1(buttons [8]bool) {
	is.Controller1.SetButtons(buttons)
}

// SetButtons2 sets all button states for controller 2 (array approach)
func (is *InputState) SetButtons2(buttons [8]bool) {
	is.Controller2.SetButtons(buttons)
}

// ReadInputOne reads the next serial bit from controller 1 ($4016).
func (is *InputState) ReadInputOne() uint8 {
	return is.Controller1.ReadInput()
}

// ReadInputTwo reads the next serial bit from controller 2 ($4017). Real
// hardware ORs in open-bus bit 6 on this port; callers that need the exact
// bus value should combine this with the bus's open-bus byte.
func (is *InputState) ReadInputTwo() uint8 {
	return is.Controller2.ReadInput() | 0x40
}

// Read satisfies memory.InputInterface, dispatching $4016/$4017 reads to
// the corresponding controller port.
func (is *InputState) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		return is.ReadInputOne()
	case 0x4017:
		return is.ReadInputTwo()
	default:
		return 0
	}
}

// Write satisfies memory.InputInterface. $4016 is the only writable
// controller-port address; the strobe it carries drives both ports.
func (is *InputState) Write(address uint16, value uint8) {
	if address == 0x4016 {
		is.Controller1.WriteOutput(value)
		is.Controller2.WriteOutput(value)
	}
}
