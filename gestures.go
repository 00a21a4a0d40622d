package iqs7211e

// Gestures is the gesture engine parameter block at registers 0x4B-0x55.
type Gestures struct {
	Enable GestureEnable
	Tap    TapConfig
	// HoldDuration is the minimum time in milliseconds a finger must stay on
	// the sensor, used by both press-and-hold and swipe-and-hold.
	HoldDuration uint16
	Swipe        SwipeConfig
	// PalmThreshold is the number of channels that must detect touch
	// simultaneously for the palm gesture.
	PalmThreshold uint8
}

const gesturesLen = 22

func defaultGestures() Gestures {
	return Gestures{
		Tap:           TapConfig{Duration: 150, AirDuration: 150, Distance: 50},
		HoldDuration:  300,
		Swipe:         SwipeConfig{Duration: 150, DistanceX: 200, DistanceY: 200, ConsecutiveX: 100, ConsecutiveY: 100, Angle: 23},
		PalmThreshold: 30,
	}
}

func (g Gestures) encode() [gesturesLen]byte {
	var out [gesturesLen]byte
	putU16(out[0:], g.Enable.bits())
	putU16(out[2:], g.Tap.Duration)
	putU16(out[4:], g.Tap.AirDuration)
	putU16(out[6:], g.Tap.Distance)
	putU16(out[8:], g.HoldDuration)
	putU16(out[10:], g.Swipe.Duration)
	putU16(out[12:], g.Swipe.DistanceX)
	putU16(out[14:], g.Swipe.DistanceY)
	putU16(out[16:], g.Swipe.ConsecutiveX)
	putU16(out[18:], g.Swipe.ConsecutiveY)
	out[20] = g.Swipe.Angle
	out[21] = g.PalmThreshold
	return out
}

func decodeGestures(buf []byte) Gestures {
	return Gestures{
		Enable: gestureEnableFromBits(getU16(buf[0:])),
		Tap: TapConfig{
			Duration:    getU16(buf[2:]),
			AirDuration: getU16(buf[4:]),
			Distance:    getU16(buf[6:]),
		},
		HoldDuration: getU16(buf[8:]),
		Swipe: SwipeConfig{
			Duration:     getU16(buf[10:]),
			DistanceX:    getU16(buf[12:]),
			DistanceY:    getU16(buf[14:]),
			ConsecutiveX: getU16(buf[16:]),
			ConsecutiveY: getU16(buf[18:]),
			Angle:        buf[20],
		},
		PalmThreshold: buf[21],
	}
}

// GestureEnable selects which gestures the engine reports.
type GestureEnable struct {
	Tap          TapEnable
	PressAndHold bool
	Palm         bool
	Swipe        SwipeEnable
	SwipeAndHold SwipeEnable
}

// EnableAllGestures returns a GestureEnable with every gesture switched on.
func EnableAllGestures() GestureEnable {
	all := SwipeEnable{PosX: true, NegX: true, PosY: true, NegY: true}
	return GestureEnable{
		Tap:          TapEnable{Single: true, Double: true, Triple: true},
		PressAndHold: true,
		Palm:         true,
		Swipe:        all,
		SwipeAndHold: all,
	}
}

func (g GestureEnable) bits() uint16 {
	var v uint16
	if g.Tap.Single {
		v |= 1 << 0
	}
	if g.Tap.Double {
		v |= 1 << 1
	}
	if g.Tap.Triple {
		v |= 1 << 2
	}
	if g.PressAndHold {
		v |= 1 << 3
	}
	if g.Palm {
		v |= 1 << 4
	}
	v |= uint16(g.Swipe.bits()) << 8
	v |= uint16(g.SwipeAndHold.bits()) << 12
	return v
}

func gestureEnableFromBits(v uint16) GestureEnable {
	return GestureEnable{
		Tap: TapEnable{
			Single: v&(1<<0) != 0,
			Double: v&(1<<1) != 0,
			Triple: v&(1<<2) != 0,
		},
		PressAndHold: v&(1<<3) != 0,
		Palm:         v&(1<<4) != 0,
		Swipe:        swipeEnableFromBits(uint8(v >> 8 & 0x0F)),
		SwipeAndHold: swipeEnableFromBits(uint8(v >> 12 & 0x0F)),
	}
}

// TapEnable selects which tap counts are reported.
type TapEnable struct {
	Single bool
	Double bool
	Triple bool
}

// SwipeEnable selects which swipe directions are reported.
type SwipeEnable struct {
	PosX bool
	NegX bool
	PosY bool
	NegY bool
}

func (s SwipeEnable) bits() uint8 {
	var v uint8
	if s.PosX {
		v |= 1 << 0
	}
	if s.NegX {
		v |= 1 << 1
	}
	if s.PosY {
		v |= 1 << 2
	}
	if s.NegY {
		v |= 1 << 3
	}
	return v
}

func swipeEnableFromBits(v uint8) SwipeEnable {
	return SwipeEnable{
		PosX: v&(1<<0) != 0,
		NegX: v&(1<<1) != 0,
		PosY: v&(1<<2) != 0,
		NegY: v&(1<<3) != 0,
	}
}

// TapConfig parameterizes tap detection: the maximum touch duration in
// milliseconds, the maximum air time between taps for multi-taps, and the
// maximum distance in pixels the finger may travel during the tap.
type TapConfig struct {
	Duration    uint16
	AirDuration uint16
	Distance    uint16
}

// SwipeConfig parameterizes swipe detection: the maximum gesture time in
// milliseconds, the minimum initial and consecutive travel distances in
// pixels per axis, and the maximum angle off the main axis, calculated as
// 64*tan(angle).
type SwipeConfig struct {
	Duration     uint16
	DistanceX    uint16
	DistanceY    uint16
	ConsecutiveX uint16
	ConsecutiveY uint16
	Angle        uint8
}
