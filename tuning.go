package iqs7211e

// AutoTune is the ATI settings block at registers 0x1F-0x27: the ALP
// compensation words, the trackpad tuning parameters, the minimum-count
// re-ATI threshold and the ALP tuning parameters.
type AutoTune struct {
	AlpCompensation AlpCompensation
	Tune            Tune
	RetuneThreshold uint16
	AlpTune         Tune
}

const autoTuneLen = 18

func defaultAutoTune() AutoTune {
	return AutoTune{
		AlpCompensation: AlpCompensation{EngineA: 441, EngineB: 466},
		Tune: Tune{
			CoarseDivider:       1,
			CoarseMultiplier:    15,
			FineDivider:         24,
			CompensationDivider: 9,
			DriftLimit:          50,
			Target:              300,
		},
		RetuneThreshold: 50,
		AlpTune: Tune{
			CoarseDivider:       1,
			CoarseMultiplier:    15,
			FineDivider:         24,
			CompensationDivider: 4,
			DriftLimit:          20,
			Target:              200,
		},
	}
}

func (a AutoTune) encode() [autoTuneLen]byte {
	var out [autoTuneLen]byte
	putU16(out[0:], a.AlpCompensation.EngineA)
	putU16(out[2:], a.AlpCompensation.EngineB)
	t := a.Tune.encode()
	copy(out[4:10], t[:])
	putU16(out[10:], a.RetuneThreshold)
	t = a.AlpTune.encode()
	copy(out[12:18], t[:])
	return out
}

func decodeAutoTune(buf []byte) AutoTune {
	return AutoTune{
		AlpCompensation: AlpCompensation{
			EngineA: getU16(buf[0:]),
			EngineB: getU16(buf[2:]),
		},
		Tune:            decodeTune(buf[4:10]),
		RetuneThreshold: getU16(buf[10:]),
		AlpTune:         decodeTune(buf[12:18]),
	}
}

// AlpCompensation holds the per-engine ALP ATI compensation values.
type AlpCompensation struct {
	EngineA uint16
	EngineB uint16
}

// Tune parameterizes one ATI run.
//
// CoarseDivider is 5 bits wide, CoarseMultiplier 4 bits and FineDivider
// 5 bits; values outside those ranges are truncated on encode.
type Tune struct {
	CoarseDivider       uint8
	CoarseMultiplier    uint8
	FineDivider         uint8
	CompensationDivider uint8
	DriftLimit          uint8
	Target              uint16
}

const tuneLen = 6

func (t Tune) encode() [tuneLen]byte {
	v := uint64(t.CoarseDivider&0x1F) |
		uint64(t.CoarseMultiplier&0x0F)<<5 |
		uint64(t.FineDivider&0x1F)<<9 |
		uint64(t.CompensationDivider)<<16 |
		uint64(t.DriftLimit)<<24 |
		uint64(t.Target)<<32

	var out [tuneLen]byte
	for i := range out {
		out[i] = byte(v >> uint(8*i))
	}
	return out
}

func decodeTune(buf []byte) Tune {
	var v uint64
	for i := 0; i < tuneLen; i++ {
		v |= uint64(buf[i]) << uint(8*i)
	}
	return Tune{
		CoarseDivider:       uint8(v) & 0x1F,
		CoarseMultiplier:    uint8(v>>5) & 0x0F,
		FineDivider:         uint8(v>>9) & 0x1F,
		CompensationDivider: uint8(v >> 16),
		DriftLimit:          uint8(v >> 24),
		Target:              uint16(v >> 32),
	}
}

func putU16(buf []byte, v uint16) {
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
}

func getU16(buf []byte) uint16 {
	return uint16(buf[0]) | uint16(buf[1])<<8
}
