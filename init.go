package iqs7211e

// initState is one step of the bring-up sequence.
type initState int

const (
	verifyProduct initState = iota
	readReset
	chipReset
	updateSettings
	ackReset
	startCalibration
	awaitCalibration
	setInterruptMode
)

// Initialize runs the bring-up sequence: verify the product number, force the
// device through a reset if one is not already pending, transfer the full
// configuration, acknowledge the reset, and run a trackpad calibration. The
// configured interrupt mode is applied last, once the calibration has
// settled.
//
// Every step is performed inside a communication window the device opens
// itself. Initialize blocks until the sequence completes; the calibration
// wait has no upper bound, so a dead RDY line stalls the caller. The identity
// check happens before anything is written: on a foreign chip the device is
// left untouched and a *ChipIDError is returned.
func (d *Device) Initialize() error {
	state := verifyProduct

	for {
		d.waitReady()

		switch state {
		case verifyProduct:
			num, err := d.readU16(RegAppVersion)
			if err != nil {
				return err
			}
			if num != ProductNumber {
				return &ChipIDError{ID: byte(num)}
			}
			state = readReset

		case readReset:
			// A pending reset means the device is at power-on defaults and
			// ready to take settings. Without one, force a reset first so the
			// transfer never lands on top of stale state.
			info, err := d.InfoFlags()
			if err != nil {
				return err
			}
			if info.ShowReset {
				state = updateSettings
			} else {
				state = chipReset
			}

		case chipReset:
			if err := d.SoftwareReset(); err != nil {
				return err
			}
			state = readReset

		case updateSettings:
			if err := d.writeConfig(); err != nil {
				return err
			}
			state = ackReset

		case ackReset:
			if err := d.AckReset(); err != nil {
				return err
			}
			state = startCalibration

		case startCalibration:
			if err := d.TriggerRetune(); err != nil {
				return err
			}
			state = awaitCalibration

		case awaitCalibration:
			// Channel states misbehave while the ATI routine runs; poll until
			// it reports completion before handing the device to the caller.
			info, err := d.InfoFlags()
			if err != nil {
				return err
			}
			if info.ReAtiOccurred {
				state = setInterruptMode
			}

		case setInterruptMode:
			return d.SetInterruptMode(d.config.InterruptMode)
		}
	}
}
