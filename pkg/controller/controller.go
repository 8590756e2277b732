package controller

// Button flags reported in LastButtonFlags and EmulatingButtonFlags.
// The holder never checks a mask against these; unknown bits are kept as-is.
const (
	Up      int32 = 0x0001
	Down    int32 = 0x0002
	Left    int32 = 0x0004
	Right   int32 = 0x0008
	Play    int32 = 0x0010
	Back    int32 = 0x0020
	LSClick int32 = 0x0040
	RSClick int32 = 0x0080
	LB      int32 = 0x0100
	RB      int32 = 0x0200
	Special int32 = 0x0400
	A       int32 = 0x1000
	B       int32 = 0x2000
	X       int32 = 0x4000
	Y       int32 = 0x8000
)

// Controller holds the last input state reported by one physical controller
// bound to a player slot.
type Controller struct {
	PlayerIndex int32

	LastButtonFlags         int32
	EmulatingButtonFlags    int32
	SupportedEmulationFlags int32

	LastLeftTrigger  int8
	LastRightTrigger int8

	LastLeftStickX  int16
	LastLeftStickY  int16
	LastRightStickX int16
	LastRightStickY int16
}

// New returns a zeroed controller for the given player slot.
func New(playerIndex int32) *Controller {
	return &Controller{PlayerIndex: playerIndex}
}

// Reset zeroes every input field. PlayerIndex and SupportedEmulationFlags
// describe the binding, not input, and are kept.
func (c *Controller) Reset() {
	c.LastButtonFlags = 0
	c.EmulatingButtonFlags = 0
	c.LastLeftTrigger = 0
	c.LastRightTrigger = 0
	c.LastLeftStickX = 0
	c.LastLeftStickY = 0
	c.LastRightStickX = 0
	c.LastRightStickY = 0
}
