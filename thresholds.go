package iqs7211e

// ChannelOutput is the threshold and filter block at registers 0x38-0x3C:
// trackpad touch multipliers, ALP output thresholds and the ALP filter betas
// for both low-power modes.
type ChannelOutput struct {
	Touch        TouchOutput
	Alp          AlpOutput
	AlpFilterLP1 AlpFilterBetas
	AlpFilterLP2 AlpFilterBetas
}

const channelOutputLen = 10

func defaultChannelOutput() ChannelOutput {
	return ChannelOutput{
		Touch:        TouchOutput{SetMultiplier: 2, ClearMultiplier: 2},
		Alp:          AlpOutput{Threshold: 8, SetDebounce: 4, ClearDebounce: 4},
		AlpFilterLP1: AlpFilterBetas{Count: 220, LTA: 8},
		AlpFilterLP2: AlpFilterBetas{Count: 240, LTA: 16},
	}
}

func (c ChannelOutput) encode() [channelOutputLen]byte {
	var out [channelOutputLen]byte
	out[0] = c.Touch.SetMultiplier
	out[1] = c.Touch.ClearMultiplier
	putU16(out[2:], c.Alp.Threshold)
	out[4] = c.Alp.SetDebounce
	out[5] = c.Alp.ClearDebounce
	out[6] = c.AlpFilterLP1.Count
	out[7] = c.AlpFilterLP1.LTA
	out[8] = c.AlpFilterLP2.Count
	out[9] = c.AlpFilterLP2.LTA
	return out
}

func decodeChannelOutput(buf []byte) ChannelOutput {
	return ChannelOutput{
		Touch: TouchOutput{SetMultiplier: buf[0], ClearMultiplier: buf[1]},
		Alp: AlpOutput{
			Threshold:     getU16(buf[2:]),
			SetDebounce:   buf[4],
			ClearDebounce: buf[5],
		},
		AlpFilterLP1: AlpFilterBetas{Count: buf[6], LTA: buf[7]},
		AlpFilterLP2: AlpFilterBetas{Count: buf[8], LTA: buf[9]},
	}
}

// TouchOutput holds the touch set/clear threshold multipliers. The touch
// threshold of a channel is Reference * (1 + Multiplier/128); distinct set
// and clear multipliers give the detection a hysteresis.
type TouchOutput struct {
	SetMultiplier   uint8
	ClearMultiplier uint8
}

// AlpOutput holds the ALP channel output threshold and debounce counts.
type AlpOutput struct {
	Threshold     uint16
	SetDebounce   uint8
	ClearDebounce uint8
}

// AlpFilterBetas holds the count and long-term-average filter betas for one
// low-power mode.
type AlpFilterBetas struct {
	Count uint8
	LTA   uint8
}
