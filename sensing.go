package iqs7211e

import "fmt"

// Alp is the low-power (ALP) channel setup block at registers 0x36-0x37.
// Rx and Tx are bitmaps derived from the pin layout; they are overwritten
// from Config.Layout during the configuration transfer.
type Alp struct {
	Rx          uint8
	SensingMode AlpSensingMode
	CountFilter bool
	Tx          uint16
}

const alpLen = 4

func defaultAlp() Alp {
	return Alp{SensingMode: AlpProjected, CountFilter: true}
}

func (a Alp) encode() [alpLen]byte {
	var out [alpLen]byte
	out[0] = a.Rx
	out[1] = uint8(a.SensingMode) & 0x01
	if a.CountFilter {
		out[1] |= 1 << 1
	}
	putU16(out[2:], a.Tx&0x1FFF)
	return out
}

func decodeAlp(buf []byte) Alp {
	return Alp{
		Rx:          buf[0],
		SensingMode: AlpSensingMode(buf[1] & 0x01),
		CountFilter: buf[1]&(1<<1) != 0,
		Tx:          getU16(buf[2:]) & 0x1FFF,
	}
}

// AlpSensingMode selects how the ALP channel senses.
type AlpSensingMode uint8

// ALP sensing modes. The field is one bit wide, so decoding is total.
const (
	AlpSelfCapacitance AlpSensingMode = 0
	AlpProjected       AlpSensingMode = 1
)

// ConversionFrequency is the charge transfer frequency block at registers
// 0x3D-0x3E.
type ConversionFrequency struct {
	Trackpad Frequency
	Alp      Frequency
}

const conversionFrequencyLen = 4

func defaultConversionFrequency() ConversionFrequency {
	return ConversionFrequency{
		Trackpad: Frequency{Period: 2, Fraction: 26},
		Alp:      Frequency{Period: 2, Fraction: 26},
	}
}

func (c ConversionFrequency) encode() [conversionFrequencyLen]byte {
	return [conversionFrequencyLen]byte{
		c.Trackpad.Period, c.Trackpad.Fraction,
		c.Alp.Period, c.Alp.Fraction,
	}
}

func decodeConversionFrequency(buf []byte) ConversionFrequency {
	return ConversionFrequency{
		Trackpad: Frequency{Period: buf[0], Fraction: buf[1]},
		Alp:      Frequency{Period: buf[2], Fraction: buf[3]},
	}
}

// Frequency selects a charge transfer frequency as 128/fraction - 2. With
// the fraction fixed at 127, a period of 1 gives 2MHz, 5 gives 1MHz, 12
// gives 500kHz, 26 gives 250kHz and 53 gives 125kHz.
type Frequency struct {
	Period   uint8
	Fraction uint8
}

// Hardware is the analog front-end block at registers 0x3F-0x40.
type Hardware struct {
	Trackpad TrackpadHardware
	Alp      AlpHardware
}

const hardwareLen = 4

func defaultHardware() Hardware {
	return Hardware{
		Trackpad: TrackpadHardware{
			InitDelay:   InitDelay64,
			MaxCount:    MaxCount1023,
			OpampBias:   OpampBias10,
			CSCap:       CSCap80,
			CSDischarge: CSDischarge0V,
			NMInStatic:  true,
		},
		Alp: AlpHardware{
			InitDelay:   InitDelay64,
			LP1AutoProx: AutoProx8,
			LP2AutoProx: AutoProx32,
			MaxCount:    MaxCount1023,
			OpampBias:   OpampBias10,
			CSCap:       CSCap80,
			CSDischarge: CSDischarge0V,
			NMInStatic:  true,
		},
	}
}

func (h Hardware) encode() [hardwareLen]byte {
	var out [hardwareLen]byte
	putU16(out[0:], h.Trackpad.bits())
	putU16(out[2:], h.Alp.bits())
	return out
}

func decodeHardware(buf []byte) (Hardware, error) {
	alp, err := alpHardwareFromBits(getU16(buf[2:]))
	if err != nil {
		return Hardware{}, err
	}
	return Hardware{
		Trackpad: trackpadHardwareFromBits(getU16(buf[0:])),
		Alp:      alp,
	}, nil
}

// TrackpadHardware configures the analog front end of the trackpad channels.
type TrackpadHardware struct {
	InitDelay   InitDelay
	MaxCount    MaxCount
	OpampBias   OpampBias
	CSCap       CSCap
	RFFilter    bool
	CSDischarge CSDischarge
	NMInStatic  bool
}

func (t TrackpadHardware) bits() uint16 {
	v := uint16(t.InitDelay) & 0x03
	v |= (uint16(t.MaxCount) & 0x03) << 8
	v |= (uint16(t.OpampBias) & 0x03) << 10
	v |= (uint16(t.CSCap) & 0x01) << 12
	if t.RFFilter {
		v |= 1 << 13
	}
	v |= (uint16(t.CSDischarge) & 0x01) << 14
	if t.NMInStatic {
		v |= 1 << 15
	}
	return v
}

func trackpadHardwareFromBits(v uint16) TrackpadHardware {
	return TrackpadHardware{
		InitDelay:   InitDelay(v & 0x03),
		MaxCount:    MaxCount(v >> 8 & 0x03),
		OpampBias:   OpampBias(v >> 10 & 0x03),
		CSCap:       CSCap(v >> 12 & 0x01),
		RFFilter:    v&(1<<13) != 0,
		CSDischarge: CSDischarge(v >> 14 & 0x01),
		NMInStatic:  v&(1<<15) != 0,
	}
}

// AlpHardware configures the analog front end of the ALP channel, plus the
// auto-prox cycle counts for both low-power modes.
type AlpHardware struct {
	InitDelay   InitDelay
	LP1AutoProx AutoProxCycles
	LP2AutoProx AutoProxCycles
	MaxCount    MaxCount
	OpampBias   OpampBias
	CSCap       CSCap
	RFFilter    bool
	CSDischarge CSDischarge
	NMInStatic  bool
}

func (a AlpHardware) bits() uint16 {
	v := uint16(a.InitDelay) & 0x03
	v |= (uint16(a.LP1AutoProx) & 0x07) << 2
	v |= (uint16(a.LP2AutoProx) & 0x07) << 5
	v |= (uint16(a.MaxCount) & 0x03) << 8
	v |= (uint16(a.OpampBias) & 0x03) << 10
	v |= (uint16(a.CSCap) & 0x01) << 12
	if a.RFFilter {
		v |= 1 << 13
	}
	v |= (uint16(a.CSDischarge) & 0x01) << 14
	if a.NMInStatic {
		v |= 1 << 15
	}
	return v
}

func alpHardwareFromBits(v uint16) (AlpHardware, error) {
	lp1, err := autoProxCyclesFromBits(uint8(v >> 2 & 0x07))
	if err != nil {
		return AlpHardware{}, err
	}
	lp2, err := autoProxCyclesFromBits(uint8(v >> 5 & 0x07))
	if err != nil {
		return AlpHardware{}, err
	}
	return AlpHardware{
		InitDelay:   InitDelay(v & 0x03),
		LP1AutoProx: lp1,
		LP2AutoProx: lp2,
		MaxCount:    MaxCount(v >> 8 & 0x03),
		OpampBias:   OpampBias(v >> 10 & 0x03),
		CSCap:       CSCap(v >> 12 & 0x01),
		RFFilter:    v&(1<<13) != 0,
		CSDischarge: CSDischarge(v >> 14 & 0x01),
		NMInStatic:  v&(1<<15) != 0,
	}, nil
}

// InitDelay selects the number of cycles the front end settles before
// conversions start. Two bits wide; decoding is total.
type InitDelay uint8

// Init delays.
const (
	InitDelay4  InitDelay = 0b00
	InitDelay16 InitDelay = 0b01
	InitDelay32 InitDelay = 0b10
	InitDelay64 InitDelay = 0b11
)

// AutoProxCycles selects how many cycles the ALP auto-prox engine charges
// for, or disables it. Three bits wide with only five defined values;
// decoding a reserved pattern fails.
type AutoProxCycles uint8

// Auto-prox cycle counts.
const (
	AutoProx4        AutoProxCycles = 0b000
	AutoProx8        AutoProxCycles = 0b001
	AutoProx16       AutoProxCycles = 0b010
	AutoProx32       AutoProxCycles = 0b011
	AutoProxDisabled AutoProxCycles = 0b100
)

func autoProxCyclesFromBits(bits uint8) (AutoProxCycles, error) {
	if bits > uint8(AutoProxDisabled) {
		return 0, fmt.Errorf("iqs7211e: reserved auto-prox cycle bits 0b%03b", bits)
	}
	return AutoProxCycles(bits), nil
}

// MaxCount selects the maximum count value of a channel. Two bits wide;
// decoding is total.
type MaxCount uint8

// Maximum counts.
const (
	MaxCount1023  MaxCount = 0b00
	MaxCount2047  MaxCount = 0b01
	MaxCount4095  MaxCount = 0b10
	MaxCount16384 MaxCount = 0b11
)

// OpampBias selects the opamp bias current. Two bits wide; decoding is total.
type OpampBias uint8

// Opamp bias currents.
const (
	OpampBias2  OpampBias = 0b00
	OpampBias5  OpampBias = 0b01
	OpampBias7  OpampBias = 0b10
	OpampBias10 OpampBias = 0b11
)

// CSCap selects the sampling capacitor size. One bit; decoding is total.
type CSCap uint8

// Sampling capacitor sizes.
const (
	CSCap40 CSCap = 0b0
	CSCap80 CSCap = 0b1
)

// CSDischarge selects the capacitor discharge floor. One bit; decoding is
// total.
type CSDischarge uint8

// Discharge floors.
const (
	CSDischarge0V   CSDischarge = 0b0
	CSDischargeHalf CSDischarge = 0b1
)
