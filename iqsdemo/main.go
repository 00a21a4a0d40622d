package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/mvera/iqs7211e"
	"github.com/mvera/iqs7211e/touchpad"
)

func main() {
	bus := flag.String("bus", "", "I2C bus name (empty selects the first available)")
	rdy := flag.String("rdy", "GPIO4", "RDY GPIO name")
	flag.Parse()

	layout, err := iqs7211e.NewPinLayout(
		[]iqs7211e.Pin{iqs7211e.RxTx2, iqs7211e.RxTx3, iqs7211e.RxTx4},
		[]iqs7211e.Pin{iqs7211e.Tx8, iqs7211e.Tx9, iqs7211e.Tx10},
		[]iqs7211e.Pin{iqs7211e.RxTx2, iqs7211e.RxTx3},
		[]iqs7211e.Pin{iqs7211e.Tx8, iqs7211e.Tx9},
	)
	if err != nil {
		log.Fatal(err)
	}

	config := iqs7211e.DefaultConfig()
	config.Layout = layout
	config.Gestures.Enable = iqs7211e.EnableAllGestures()

	sensor, err := iqs7211e.New(*bus, *rdy, config)
	if err != nil {
		log.Fatal(err)
	}
	defer sensor.Close()

	if err := sensor.Initialize(); err != nil {
		log.Fatal(err)
	}

	version, err := sensor.AppVersion()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("IQS7211E v%d.%d (%#04x)\n", version.Major, version.Minor, version.Number)

	pad := touchpad.New(sensor)
	for {
		frame, err := pad.NextFrame()
		if err != nil {
			log.Fatal(err)
		}

		if frame.Gesture.Kind != iqs7211e.GestureNone {
			fmt.Printf("gesture: %#04x at (%d, %d)\n",
				uint16(frame.Gesture.Kind), frame.Gesture.Point.X, frame.Gesture.Point.Y)
		}
		for _, t := range frame.Events.Touches() {
			fmt.Printf("%s %s at (%d, %d) strength=%d\n",
				t.Slot, t.Phase, t.Point.X, t.Point.Y, t.Point.Strength)
		}
	}
}
