// Package iqs7211e provides a driver for the Azoteq IQS7211E capacitive
// touch/trackpad controller.
//
// The device is reached over I²C and gates every communication window with an
// active-low RDY line. The driver stages a structured configuration into the
// register map, runs the bring-up/ATI handshake and converts raw register
// snapshots into gesture and finger reports. See the touchpad subpackage for
// a higher level event interface.
//
// Datasheet: https://www.azoteq.com/design/datasheets/
package iqs7211e

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"
)

var (
	// ErrBufferOverflow is thrown when a register write payload exceeds the
	// 31 data bytes that fit in one transport buffer next to the address
	// byte. The write is rejected whole; nothing is sent.
	ErrBufferOverflow = errors.New("iqs7211e: write payload exceeds 31 bytes")
)

// ChipIDError is thrown when the product number read during bring-up does not
// match an IQS7211E signature (0x0458). It carries the low byte of the
// unexpected identification word.
type ChipIDError struct {
	ID byte
}

func (e *ChipIDError) Error() string {
	return fmt.Sprintf("iqs7211e: product number does not match (got low byte %#02x)", e.ID)
}

// Bus is the register transport consumed by the driver. periph.io's *i2c.Dev
// satisfies it; tests substitute a scripted fake.
type Bus interface {
	// Tx sends w and then reads len(r) bytes in one transaction.
	Tx(w, r []byte) error
	// Write sends b in one transaction.
	Write(b []byte) (int, error)
}

// ReadyPin is the RDY line of the device. The controller opens a
// communication window by driving RDY low. gpio.PinIn satisfies it.
type ReadyPin interface {
	WaitForEdge(timeout time.Duration) bool
	Read() gpio.Level
}

// Device drives a single IQS7211E. It is not safe for concurrent use: the
// driver assumes exclusive ownership of the bus handle and the RDY line for
// its lifetime.
type Device struct {
	bus    Bus
	rdy    ReadyPin
	closer i2c.BusCloser
	config Config

	addr uint16
}

// New opens the I²C bus and RDY GPIO by name and returns a device holding the
// given configuration. The device is not touched until Initialize is called.
//
// Argument "busName" selects the exact bus ("/dev/i2c-1", "I2C1", "1"); an
// empty string selects the first available bus. Argument "rdyName" names the
// RDY GPIO (e.g. "GPIO4"). The configuration is copied; mutate it only
// between sessions, never while a bring-up is in flight.
func New(busName, rdyName string, config Config, options ...Option) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("iqs7211e: could not initialize host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("iqs7211e: could not open I2C bus: %w", err)
	}

	pin := gpioreg.ByName(rdyName)
	if pin == nil {
		bus.Close()
		return nil, fmt.Errorf("iqs7211e: could not find RDY pin %q", rdyName)
	}
	if err := pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		bus.Close()
		return nil, fmt.Errorf("iqs7211e: could not configure RDY pin: %w", err)
	}

	d := &Device{
		addr:   Addr,
		rdy:    pin,
		closer: bus,
		config: config,
	}
	for _, opt := range options {
		opt(d)
	}
	d.bus = &i2c.Dev{Addr: d.addr, Bus: bus}

	return d, nil
}

// Wrap returns a device on an already configured transport and RDY line.
// Useful for custom platforms and for testing.
func Wrap(bus Bus, rdy ReadyPin, config Config) *Device {
	return &Device{
		bus:    bus,
		rdy:    rdy,
		config: config,
		addr:   Addr,
	}
}

// Close releases the bus handle, if the device owns one.
func (d *Device) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

// Config returns a copy of the configuration held by the driver.
func (d *Device) Config() Config {
	return d.config
}

// SetConfig replaces the configuration mirror. It takes effect on the next
// Initialize; it must not be called while a bring-up is in flight.
func (d *Device) SetConfig(config Config) {
	d.config = config
}

// waitReady blocks until the device opens a communication window by asserting
// RDY low. There is no timeout: callers wanting bounded behavior must wrap
// the call externally.
//
// Call it once before a related group of transactions, not before each
// individual one. A window may span several reads and writes, but it can also
// close again between awaited calls, so each logically independent step of a
// sequence re-awaits readiness.
func (d *Device) waitReady() {
	for d.rdy.Read() != gpio.Low {
		d.rdy.WaitForEdge(-1)
	}
}

// ForceComms requests a communication window while RDY is deasserted by
// writing 0x00 to the comms-request address, then waits for the window the
// device opens. Needed to reach the device in event mode when no events are
// pending.
func (d *Device) ForceComms() error {
	if _, err := d.bus.Write([]byte{commsRequestReg, 0x00}); err != nil {
		return fmt.Errorf("iqs7211e: could not request comms window: %w", err)
	}
	d.waitReady()
	return nil
}

// readBytes reads len(buf) bytes starting at a single-byte register address.
func (d *Device) readBytes(reg byte, buf []byte) error {
	if err := d.bus.Tx([]byte{reg}, buf); err != nil {
		return fmt.Errorf("iqs7211e: could not read %d bytes at %#02x: %w", len(buf), reg, err)
	}
	return nil
}

// readU16 reads one little-endian 16-bit value at reg.
func (d *Device) readU16(reg byte) (uint16, error) {
	buf := make([]byte, 2)
	if err := d.readBytes(reg, buf); err != nil {
		return 0, err
	}
	return uint16(buf[0]) | uint16(buf[1])<<8, nil
}

// writeBytes writes data starting at a single-byte register address. The
// payload is limited to 31 bytes; larger payloads fail with ErrBufferOverflow
// before anything is sent.
func (d *Device) writeBytes(reg byte, data []byte) error {
	if len(data) > maxWritePayload {
		return ErrBufferOverflow
	}

	buf := make([]byte, 0, len(data)+1)
	buf = append(buf, reg)
	buf = append(buf, data...)

	n, err := d.bus.Write(buf)
	if err != nil {
		return fmt.Errorf("iqs7211e: could not write %d bytes at %#02x: %w", len(data), reg, err)
	}
	if n != len(buf) {
		return fmt.Errorf("iqs7211e: short write at %#02x: %d of %d bytes", reg, n, len(buf))
	}
	return nil
}

// writeU16 writes one little-endian 16-bit value at reg.
func (d *Device) writeU16(reg byte, v uint16) error {
	return d.writeBytes(reg, []byte{byte(v), byte(v >> 8)})
}

// readExtBytes reads from the extended diagnostic space, addressed with a
// 16-bit big-endian register address (0xE1xx/0xE2xx pages).
func (d *Device) readExtBytes(addr uint16, buf []byte) error {
	if err := d.bus.Tx([]byte{byte(addr >> 8), byte(addr)}, buf); err != nil {
		return fmt.Errorf("iqs7211e: could not read %d bytes at extended %#04x: %w", len(buf), addr, err)
	}
	return nil
}

// readExtU16 reads one little-endian 16-bit value from the extended space.
func (d *Device) readExtU16(addr uint16) (uint16, error) {
	buf := make([]byte, 2)
	if err := d.readExtBytes(addr, buf); err != nil {
		return 0, err
	}
	return uint16(buf[0]) | uint16(buf[1])<<8, nil
}
