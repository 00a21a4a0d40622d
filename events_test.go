package iqs7211e

import "testing"

func TestDecodeGesture(t *testing.T) {
	cases := []struct {
		name string
		code uint16
		want GestureKind
	}{
		{"none", 0x0000, GestureNone},
		{"single tap", 0x0001, GestureSingleTap},
		{"triple tap", 0x0004, GestureTripleTap},
		{"press and hold", 0x0008, GesturePressHold},
		{"palm", 0x0010, GesturePalm},
		{"swipe x positive", 0x0100, GestureSwipeXPos},
		{"swipe hold y negative", 0x8000, GestureSwipeHoldYNeg},
		{"reserved low bit", 0x0020, GestureUnknown},
		{"two codes at once", 0x0101, GestureUnknown},
		{"future code", 0x4242, GestureUnknown},
	}

	for _, tc := range cases {
		buf := []byte{0x10, 0x00, 0x20, 0x00, byte(tc.code), byte(tc.code >> 8)}
		g := decodeGesture(buf)
		if g.Kind != tc.want {
			t.Errorf("%s: kind = %#04x, want %#04x", tc.name, uint16(g.Kind), uint16(tc.want))
		}
		if g.Point != (Point{X: 0x10, Y: 0x20}) {
			t.Errorf("%s: point = %+v", tc.name, g.Point)
		}
	}
}

func TestDecodeGestureNegativeDelta(t *testing.T) {
	// -5 on X, -300 on Y, swipe code.
	buf := []byte{0xFB, 0xFF, 0xD4, 0xFE, 0x00, 0x02}
	g := decodeGesture(buf)
	if g.Kind != GestureSwipeXNeg {
		t.Fatalf("kind = %#04x, want swipe x negative", uint16(g.Kind))
	}
	if g.Delta.DX != -5 || g.Delta.DY != -300 {
		t.Errorf("delta = %+v, want (-5, -300)", g.Delta)
	}
}

func TestFingerPresent(t *testing.T) {
	if AbsentFinger().Present() {
		t.Error("AbsentFinger reported as present")
	}
	if !(Finger{X: 0, Y: 0}).Present() {
		t.Error("origin contact reported as absent")
	}
	if !(Finger{X: 0xFFFF, Y: 10}).Present() {
		t.Error("contact at X=0xFFFF with valid Y reported as absent")
	}
}

func TestDecodeInfoFlags(t *testing.T) {
	flags, err := decodeInfoFlags(1<<7 | 1<<4 | 2<<8 | 1<<10 | 3)
	if err != nil {
		t.Fatalf("decodeInfoFlags failed: %v", err)
	}
	want := InfoFlags{
		ChargeMode:    ChargeLowPower1,
		ReAtiOccurred: true,
		ShowReset:     true,
		NumFingers:    2,
		TPMovement:    true,
	}
	if flags != want {
		t.Errorf("decodeInfoFlags = %+v, want %+v", flags, want)
	}

	if _, err := decodeInfoFlags(0b111); err == nil {
		t.Error("decodeInfoFlags accepted a reserved charge mode")
	}
}

func TestReportSnapshot(t *testing.T) {
	d, bus := newTestDevice(t)
	bus.setU16(RegGestureX, 40)
	bus.setU16(RegGestureY, 80)
	bus.setU16(RegGestures, uint16(GestureSingleTap))
	bus.setU16(RegInfoFlags, 1<<8) // one finger
	bus.setU16(RegFinger1X, 40)
	bus.setU16(RegFinger1Y, 80)
	bus.setU16(RegFinger1Str, 120)
	bus.setU16(RegFinger1Aea, 4)
	bus.setU16(RegFinger2X, 0xFFFF)
	bus.setU16(RegFinger2Y, 0xFFFF)

	report, err := d.Report()
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	if report.Gesture.Kind != GestureSingleTap {
		t.Errorf("gesture = %#04x, want single tap", uint16(report.Gesture.Kind))
	}
	if report.Gesture.Point != (Point{X: 40, Y: 80}) {
		t.Errorf("gesture point = %+v", report.Gesture.Point)
	}
	if report.Info.NumFingers != 1 {
		t.Errorf("NumFingers = %d, want 1", report.Info.NumFingers)
	}
	if want := (Finger{X: 40, Y: 80, Strength: 120, Area: 4}); report.Fingers[0] != want {
		t.Errorf("finger 1 = %+v, want %+v", report.Fingers[0], want)
	}
	if report.Fingers[1].Present() {
		t.Errorf("finger 2 = %+v, want absent", report.Fingers[1])
	}
}
