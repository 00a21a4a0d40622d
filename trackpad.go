package iqs7211e

import "fmt"

// Trackpad is the geometry and XY-filter block at registers 0x41-0x49.
// TotalRx and TotalTx are derived from the pin layout; they are overwritten
// from Config.Layout during the configuration transfer.
type Trackpad struct {
	Axes       Axes
	Filters    Filters
	TotalRx    uint8
	TotalTx    uint8
	MaxTouches MaxTouches
	Resolution Resolution
	// DynamicFilter applies when Filters.IRR is IrrDynamic.
	DynamicFilter DynamicFilterConfig
	// StaticFilterBeta applies when Filters.IRR is IrrFixed.
	StaticFilterBeta uint8
	// StationaryThreshold is the movement in pixels below which a touch is
	// considered stationary.
	StationaryThreshold uint8
	// FingerSplitFactor tunes how aggressively two close contacts are split;
	// 0 disables splitting.
	FingerSplitFactor uint8
	Inset             AxesInset
}

const trackpadLen = 18

func defaultTrackpad() Trackpad {
	return Trackpad{
		Filters:             Filters{IRR: IrrDynamic, MovingAverage: true},
		MaxTouches:          MaxTouchesTwo,
		Resolution:          Resolution{X: 1000, Y: 1000},
		DynamicFilter:       DynamicFilterConfig{BottomSpeed: 6, TopSpeed: 124, BottomBeta: 7},
		StaticFilterBeta:    128,
		StationaryThreshold: 20,
		FingerSplitFactor:   3,
		Inset:               AxesInset{X: 20, Y: 20},
	}
}

func (t Trackpad) encode() [trackpadLen]byte {
	var out [trackpadLen]byte
	b := uint8(0)
	if t.Axes.FlipX {
		b |= 1 << 0
	}
	if t.Axes.FlipY {
		b |= 1 << 1
	}
	if t.Axes.Swap {
		b |= 1 << 2
	}
	b |= (uint8(t.Filters.IRR) & 0x03) << 3
	if t.Filters.MovingAverage {
		b |= 1 << 5
	}
	out[0] = b
	out[1] = t.TotalRx
	out[2] = t.TotalTx
	out[3] = uint8(t.MaxTouches) & 0x03
	putU16(out[4:], t.Resolution.X)
	putU16(out[6:], t.Resolution.Y)
	putU16(out[8:], t.DynamicFilter.BottomSpeed)
	putU16(out[10:], t.DynamicFilter.TopSpeed)
	out[12] = t.DynamicFilter.BottomBeta
	out[13] = t.StaticFilterBeta
	out[14] = t.StationaryThreshold
	out[15] = t.FingerSplitFactor
	out[16] = t.Inset.X
	out[17] = t.Inset.Y
	return out
}

func decodeTrackpad(buf []byte) (Trackpad, error) {
	irr, err := irrFilterFromBits(buf[0] >> 3 & 0x03)
	if err != nil {
		return Trackpad{}, err
	}
	touches, err := maxTouchesFromBits(buf[3] & 0x03)
	if err != nil {
		return Trackpad{}, err
	}
	return Trackpad{
		Axes: Axes{
			FlipX: buf[0]&(1<<0) != 0,
			FlipY: buf[0]&(1<<1) != 0,
			Swap:  buf[0]&(1<<2) != 0,
		},
		Filters: Filters{
			IRR:           irr,
			MovingAverage: buf[0]&(1<<5) != 0,
		},
		TotalRx:    buf[1],
		TotalTx:    buf[2],
		MaxTouches: touches,
		Resolution: Resolution{X: getU16(buf[4:]), Y: getU16(buf[6:])},
		DynamicFilter: DynamicFilterConfig{
			BottomSpeed: getU16(buf[8:]),
			TopSpeed:    getU16(buf[10:]),
			BottomBeta:  buf[12],
		},
		StaticFilterBeta:    buf[13],
		StationaryThreshold: buf[14],
		FingerSplitFactor:   buf[15],
		Inset:               AxesInset{X: buf[16], Y: buf[17]},
	}, nil
}

// Axes flips or swaps the reported coordinate axes.
type Axes struct {
	FlipX bool
	FlipY bool
	Swap  bool
}

// Filters selects the XY position filtering strategy.
type Filters struct {
	IRR           IrrFilter
	MovingAverage bool
}

// IrrFilter selects the IRR filter mode. Two bits wide with three defined
// values; decoding the reserved pattern fails.
type IrrFilter uint8

// IRR filter modes.
const (
	IrrDisabled IrrFilter = 0b00
	IrrDynamic  IrrFilter = 0b01
	IrrFixed    IrrFilter = 0b10
)

func irrFilterFromBits(bits uint8) (IrrFilter, error) {
	if bits > uint8(IrrFixed) {
		return 0, fmt.Errorf("iqs7211e: reserved IRR filter bits 0b%02b", bits)
	}
	return IrrFilter(bits), nil
}

// MaxTouches selects how many simultaneous contacts are tracked. Two bits
// wide with two defined values; decoding a reserved pattern fails.
type MaxTouches uint8

// Simultaneous contact limits.
const (
	MaxTouchesOne MaxTouches = 0b01
	MaxTouchesTwo MaxTouches = 0b10
)

func maxTouchesFromBits(bits uint8) (MaxTouches, error) {
	if bits != uint8(MaxTouchesOne) && bits != uint8(MaxTouchesTwo) {
		return 0, fmt.Errorf("iqs7211e: reserved max-touches bits 0b%02b", bits)
	}
	return MaxTouches(bits), nil
}

// Resolution is the reported coordinate range of the trackpad.
type Resolution struct {
	X uint16
	Y uint16
}

// DynamicFilterConfig parameterizes the speed-adaptive XY filter.
type DynamicFilterConfig struct {
	BottomSpeed uint16
	TopSpeed    uint16
	BottomBeta  uint8
}

// AxesInset shrinks the active area by a margin in pixels on each axis.
type AxesInset struct {
	X uint8
	Y uint8
}
