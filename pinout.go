package iqs7211e

import "fmt"

// Pin identifies one of the 13 sensing pads. Pads 0 to 7 can act as Rx or Tx,
// pads 8 to 12 are Tx only.
type Pin uint8

// Sensing pads.
const (
	RxTx0 Pin = 0
	RxTx1 Pin = 1
	RxTx2 Pin = 2
	RxTx3 Pin = 3
	RxTx4 Pin = 4
	RxTx5 Pin = 5
	RxTx6 Pin = 6
	RxTx7 Pin = 7
	Tx8   Pin = 8
	Tx9   Pin = 9
	Tx10  Pin = 10
	Tx11  Pin = 11
	Tx12  Pin = 12
)

// isBlockA reports whether the pin belongs to prox block A (Rx0-3) when used
// as an Rx electrode.
func (p Pin) isBlockA() bool {
	return p < 4
}

// isBlockB reports whether the pin belongs to prox block B (Rx4-7) when used
// as an Rx electrode.
func (p Pin) isBlockB() bool {
	return p >= 4 && p < 8
}

// Cycle is one hardware sensing timeslot. Each cycle senses up to one channel
// from prox block A and one from block B, both on the same Tx line. A slot
// value of UnusedChannel means no channel is allocated there.
type Cycle struct {
	Tx    Pin
	ProxA uint8
	ProxB uint8
}

func (c Cycle) empty() bool {
	return c.ProxA == UnusedChannel && c.ProxB == UnusedChannel
}

// PinLayout describes how the electrode matrix is wired to the sensing pads.
// It is immutable once constructed; NewPinLayout validates it up front so the
// bring-up cannot fail on a malformed layout later.
type PinLayout struct {
	rx    []Pin
	tx    []Pin
	alpRx []Pin
	alpTx []Pin
}

// NewPinLayout builds a validated pin layout. rx and tx are the ordered
// trackpad electrode sets; alpRx and alpTx select the subset used by the
// low-power (ALP) channel.
//
// The layout is rejected when rx and tx together exceed the 13 available
// pads, when they overlap, or when an ALP pin is not part of the
// corresponding trackpad set.
func NewPinLayout(rx, tx, alpRx, alpTx []Pin) (PinLayout, error) {
	if len(rx)+len(tx) > MaxPins {
		return PinLayout{}, fmt.Errorf("iqs7211e: pin layout uses %d pads, only %d available", len(rx)+len(tx), MaxPins)
	}
	for _, p := range rx {
		if containsPin(tx, p) {
			return PinLayout{}, fmt.Errorf("iqs7211e: pad %d assigned to both Rx and Tx", p)
		}
	}
	for _, p := range alpRx {
		if !containsPin(rx, p) {
			return PinLayout{}, fmt.Errorf("iqs7211e: ALP Rx pad %d is not an Rx pad", p)
		}
	}
	for _, p := range alpTx {
		if !containsPin(tx, p) {
			return PinLayout{}, fmt.Errorf("iqs7211e: ALP Tx pad %d is not a Tx pad", p)
		}
	}

	l := PinLayout{
		rx:    append([]Pin(nil), rx...),
		tx:    append([]Pin(nil), tx...),
		alpRx: append([]Pin(nil), alpRx...),
		alpTx: append([]Pin(nil), alpTx...),
	}
	return l, nil
}

func containsPin(pins []Pin, p Pin) bool {
	for _, q := range pins {
		if q == p {
			return true
		}
	}
	return false
}

// RxCount returns the number of Rx electrodes.
func (l PinLayout) RxCount() int { return len(l.rx) }

// TxCount returns the number of Tx electrodes.
func (l PinLayout) TxCount() int { return len(l.tx) }

// Channels returns the number of trackpad channels (Rx × Tx).
func (l PinLayout) Channels() int { return len(l.rx) * len(l.tx) }

// Cycles packs the trackpad channels into the 21 hardware sensing timeslots.
//
// Tx pins are walked in declaration order, and for each Tx the Rx pins in
// declaration order; every (tx, rx) pair consumes one sequential channel
// index whether or not it lands in a cycle. An Rx in block A fills the first
// existing cycle for that Tx with a free prox-A slot, or opens a new cycle
// while fewer than 21 exist; block B is symmetric. Rx electrodes beyond pad 7
// belong to neither block: they advance the channel index but never occupy a
// slot. Channels that find no room once 21 cycles exist are dropped silently,
// matching the hardware ceiling.
func (l PinLayout) Cycles() [MaxCycles]Cycle {
	var cycles [MaxCycles]Cycle
	for i := range cycles {
		cycles[i] = Cycle{ProxA: UnusedChannel, ProxB: UnusedChannel}
	}

	count := 0
	channel := uint8(0)
	for _, tx := range l.tx {
		for _, rx := range l.rx {
			a, b := rx.isBlockA(), rx.isBlockB()
			if !a && !b {
				channel++
				continue
			}

			slot := -1
			for i := 0; i < count; i++ {
				if cycles[i].Tx != tx {
					continue
				}
				if a && cycles[i].ProxA == UnusedChannel || b && cycles[i].ProxB == UnusedChannel {
					slot = i
					break
				}
			}
			if slot < 0 && count < MaxCycles {
				cycles[count] = Cycle{Tx: tx, ProxA: UnusedChannel, ProxB: UnusedChannel}
				slot = count
				count++
			}
			if slot >= 0 {
				if a {
					cycles[slot].ProxA = channel
				} else {
					cycles[slot].ProxB = channel
				}
			}
			channel++
		}
	}

	return cycles
}

// cycleBytes lays the cycle table out exactly as the cycle allocation
// registers (0x5D-0x7C) expect it: each cycle contributes the triple
// [0x05, proxA, proxB], and a trailing terminator byte (0x01, distinct from
// the header) fills the final byte of the register window.
func (l PinLayout) cycleBytes() [cycleTableLen]byte {
	var out [cycleTableLen]byte
	cycles := l.Cycles()
	for i, c := range cycles {
		out[i*3] = cycleHeader
		out[i*3+1] = c.ProxA
		out[i*3+2] = c.ProxB
	}
	out[MaxCycles*3] = cycleTerminator
	return out
}

// mapping returns the 14-byte Rx/Tx mapping block for registers 0x56-0x5C:
// the Rx pads in order, then the Tx pads, zero padded.
func (l PinLayout) mapping() [MaxPins + 1]byte {
	var out [MaxPins + 1]byte
	for i, p := range l.rx {
		out[i] = byte(p)
	}
	for i, p := range l.tx {
		out[len(l.rx)+i] = byte(p)
	}
	return out
}

// alpRxMask returns the ALP Rx selection bitmap, one bit per pad Rx0-7.
func (l PinLayout) alpRxMask() uint8 {
	var mask uint8
	for _, p := range l.alpRx {
		if p < 8 {
			mask |= 1 << uint(p)
		}
	}
	return mask
}

// alpTxMask returns the ALP Tx selection bitmap, one bit per pad 0-12.
func (l PinLayout) alpTxMask() uint16 {
	var mask uint16
	for _, p := range l.alpTx {
		mask |= 1 << uint(p)
	}
	return mask
}
