package iqs7211e

import "fmt"

// InfoFlags is the real-time status word at RegInfoFlags.
type InfoFlags struct {
	ChargeMode ChargeMode
	// AtiError is set when the last trackpad calibration failed.
	AtiError bool
	// ReAtiOccurred is set after a calibration run completes; it stays set
	// until the reseed of the affected channels.
	ReAtiOccurred    bool
	AlpAtiError      bool
	AlpReAtiOccurred bool
	// ShowReset is set after a device reset until acknowledged with AckReset.
	ShowReset bool
	// NumFingers is the number of contacts currently tracked (0 to 2).
	NumFingers     uint8
	TPMovement     bool
	TooManyFingers bool
	AlpOutput      bool
}

func decodeInfoFlags(v uint16) (InfoFlags, error) {
	mode, err := chargeModeFromBits(uint8(v))
	if err != nil {
		return InfoFlags{}, err
	}
	return InfoFlags{
		ChargeMode:       mode,
		AtiError:         v&(1<<3) != 0,
		ReAtiOccurred:    v&(1<<4) != 0,
		AlpAtiError:      v&(1<<5) != 0,
		AlpReAtiOccurred: v&(1<<6) != 0,
		ShowReset:        v&(1<<7) != 0,
		NumFingers:       uint8(v >> 8 & 0x03),
		TPMovement:       v&(1<<10) != 0,
		TooManyFingers:   v&(1<<12) != 0,
		AlpOutput:        v&(1<<14) != 0,
	}, nil
}

// InfoFlags reads the status word from the device.
func (d *Device) InfoFlags() (InfoFlags, error) {
	v, err := d.readU16(RegInfoFlags)
	if err != nil {
		return InfoFlags{}, fmt.Errorf("iqs7211e: could not read info flags: %w", err)
	}
	return decodeInfoFlags(v)
}

// Point is an absolute trackpad coordinate.
type Point struct {
	X uint16
	Y uint16
}

// Vector is a relative trackpad movement.
type Vector struct {
	DX int16
	DY int16
}

// GestureKind identifies a gesture reported by the device. The values of the
// defined kinds match the one-hot codes of the gesture register.
type GestureKind uint16

// Gesture kinds.
const (
	GestureNone      GestureKind = 0
	GestureSingleTap GestureKind = 1 << 0
	GestureDoubleTap GestureKind = 1 << 1
	GestureTripleTap GestureKind = 1 << 2
	GesturePressHold GestureKind = 1 << 3
	GesturePalm      GestureKind = 1 << 4

	GestureSwipeXPos GestureKind = 1 << 8
	GestureSwipeXNeg GestureKind = 1 << 9
	GestureSwipeYPos GestureKind = 1 << 10
	GestureSwipeYNeg GestureKind = 1 << 11

	GestureSwipeHoldXPos GestureKind = 1 << 12
	GestureSwipeHoldXNeg GestureKind = 1 << 13
	GestureSwipeHoldYPos GestureKind = 1 << 14
	GestureSwipeHoldYNeg GestureKind = 1 << 15

	// GestureUnknown is reported when the register carries a nonzero code
	// that matches none of the defined kinds, e.g. from a newer firmware.
	GestureUnknown GestureKind = 0xFFFF
)

// IsSwipe reports whether the gesture is a swipe or swipe-and-hold.
func (k GestureKind) IsSwipe() bool {
	return k != GestureUnknown && k >= GestureSwipeXPos
}

// IsTap reports whether the gesture is a tap of any count.
func (k GestureKind) IsTap() bool {
	return k == GestureSingleTap || k == GestureDoubleTap || k == GestureTripleTap
}

// Gesture is one decoded gesture event. For taps and press-and-hold, Point
// holds the absolute coordinate where the gesture happened. For swipes,
// Delta holds the relative movement. Palm gestures carry neither.
type Gesture struct {
	Kind  GestureKind
	Point Point
	Delta Vector
}

const gestureDataLen = 6

func decodeGesture(buf []byte) Gesture {
	kind := GestureKind(getU16(buf[4:]))
	switch kind {
	case GestureNone,
		GestureSingleTap, GestureDoubleTap, GestureTripleTap,
		GesturePressHold, GesturePalm,
		GestureSwipeXPos, GestureSwipeXNeg, GestureSwipeYPos, GestureSwipeYNeg,
		GestureSwipeHoldXPos, GestureSwipeHoldXNeg, GestureSwipeHoldYPos, GestureSwipeHoldYNeg:
	default:
		kind = GestureUnknown
	}
	return Gesture{
		Kind:  kind,
		Point: Point{X: getU16(buf[0:]), Y: getU16(buf[2:])},
		Delta: Vector{DX: int16(getU16(buf[0:])), DY: int16(getU16(buf[2:]))},
	}
}

// Gesture reads the pending gesture data. A communication window must be
// open; see Report for the awaited variant.
func (d *Device) Gesture() (Gesture, error) {
	var buf [gestureDataLen]byte
	if err := d.readBytes(RegGestureX, buf[:]); err != nil {
		return Gesture{}, fmt.Errorf("iqs7211e: could not read gesture data: %w", err)
	}
	return decodeGesture(buf[:]), nil
}

// Finger is one tracked contact. Strength is the touch delta sum and Area
// the number of channels in the contact.
type Finger struct {
	X        uint16
	Y        uint16
	Strength uint16
	Area     uint16
}

// AbsentFinger returns the value the device reports for an untracked slot.
func AbsentFinger() Finger {
	return Finger{X: 0xFFFF, Y: 0xFFFF}
}

// Present reports whether the slot carries a contact. The device marks an
// empty slot with the coordinate (0xFFFF, 0xFFFF).
func (f Finger) Present() bool {
	return !(f.X == 0xFFFF && f.Y == 0xFFFF)
}

const fingerDataLen = 16

func decodeFingers(buf []byte) [2]Finger {
	var out [2]Finger
	for i := range out {
		b := buf[i*8:]
		out[i] = Finger{
			X:        getU16(b[0:]),
			Y:        getU16(b[2:]),
			Strength: getU16(b[4:]),
			Area:     getU16(b[6:]),
		}
	}
	return out
}

// Touchpoints reads both finger slots. A communication window must be open.
func (d *Device) Touchpoints() ([2]Finger, error) {
	var buf [fingerDataLen]byte
	if err := d.readBytes(RegFinger1X, buf[:]); err != nil {
		return [2]Finger{}, fmt.Errorf("iqs7211e: could not read finger data: %w", err)
	}
	return decodeFingers(buf[:]), nil
}

// Report is one coherent snapshot of the event registers.
type Report struct {
	Gesture Gesture
	Info    InfoFlags
	Fingers [2]Finger
}

// Report waits for the next communication window and takes a snapshot of the
// gesture, status and finger registers within it. In Event mode this blocks
// until the device signals an enabled event; in Stream mode it returns one
// snapshot per sensing cycle.
func (d *Device) Report() (Report, error) {
	d.waitReady()

	gesture, err := d.Gesture()
	if err != nil {
		return Report{}, err
	}
	info, err := d.InfoFlags()
	if err != nil {
		return Report{}, err
	}
	fingers, err := d.Touchpoints()
	if err != nil {
		return Report{}, err
	}

	return Report{Gesture: gesture, Info: info, Fingers: fingers}, nil
}
