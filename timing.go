package iqs7211e

// Timing is the report rate and timeout block at registers 0x28-0x32.
type Timing struct {
	ReportRate ReportRate
	Timeouts   Timeouts
	// RetuneRetryDelay is the delay in seconds before a failed ATI run is
	// retried. 6 bits wide, so at most 60 seconds.
	RetuneRetryDelay uint8
	// LtaSamplingInterval is the interval in seconds for sampling the
	// reference used in the long term average calculation. 6 bits wide, at
	// most 60 seconds.
	LtaSamplingInterval uint8
	// I2CTimeout is the time in milliseconds within which the master must
	// service a communication window. When breached the device moves on and
	// the corresponding data is lost.
	I2CTimeout uint16
}

const timingLen = 22

func defaultTiming() Timing {
	return Timing{
		ReportRate:          ReportRate{Active: 10, IdleTouch: 50, Idle: 20, LP1: 80, LP2: 160},
		Timeouts:            Timeouts{Active: 10, IdleTouch: 60, Idle: 10, LP1: 10},
		RetuneRetryDelay:    5,
		LtaSamplingInterval: 8,
		I2CTimeout:          100,
	}
}

func (t Timing) encode() [timingLen]byte {
	var out [timingLen]byte
	putU16(out[0:], t.ReportRate.Active)
	putU16(out[2:], t.ReportRate.IdleTouch)
	putU16(out[4:], t.ReportRate.Idle)
	putU16(out[6:], t.ReportRate.LP1)
	putU16(out[8:], t.ReportRate.LP2)
	putU16(out[10:], t.Timeouts.Active)
	putU16(out[12:], t.Timeouts.IdleTouch)
	putU16(out[14:], t.Timeouts.Idle)
	putU16(out[16:], t.Timeouts.LP1)
	out[18] = t.RetuneRetryDelay & 0x3F
	out[19] = t.LtaSamplingInterval & 0x3F
	putU16(out[20:], t.I2CTimeout)
	return out
}

func decodeTiming(buf []byte) Timing {
	return Timing{
		ReportRate: ReportRate{
			Active:    getU16(buf[0:]),
			IdleTouch: getU16(buf[2:]),
			Idle:      getU16(buf[4:]),
			LP1:       getU16(buf[6:]),
			LP2:       getU16(buf[8:]),
		},
		Timeouts: Timeouts{
			Active:    getU16(buf[10:]),
			IdleTouch: getU16(buf[12:]),
			Idle:      getU16(buf[14:]),
			LP1:       getU16(buf[16:]),
		},
		RetuneRetryDelay:    buf[18] & 0x3F,
		LtaSamplingInterval: buf[19] & 0x3F,
		I2CTimeout:          getU16(buf[20:]),
	}
}

// ReportRate selects the cycle time in milliseconds for each charge mode.
// A faster rate gives faster response at higher current consumption.
type ReportRate struct {
	Active    uint16
	IdleTouch uint16
	Idle      uint16
	LP1       uint16
	LP2       uint16
}

// Timeouts selects, in seconds, how long the device stays in each charge
// mode before moving to the next. A value of 0 means never.
type Timeouts struct {
	Active    uint16
	IdleTouch uint16
	Idle      uint16
	LP1       uint16
}
