package iqs7211e

import "testing"

func TestCyclesBackfillsBlocks(t *testing.T) {
	layout, err := NewPinLayout([]Pin{RxTx0, RxTx4}, []Pin{Tx8, Tx9}, nil, nil)
	if err != nil {
		t.Fatalf("NewPinLayout failed: %v", err)
	}

	cycles := layout.Cycles()
	want := []Cycle{
		{Tx: Tx8, ProxA: 0, ProxB: 1},
		{Tx: Tx9, ProxA: 2, ProxB: 3},
	}
	for i, w := range want {
		if cycles[i] != w {
			t.Errorf("cycle %d = %+v, want %+v", i, cycles[i], w)
		}
	}
	for i := len(want); i < MaxCycles; i++ {
		if !cycles[i].empty() {
			t.Errorf("cycle %d = %+v, want empty", i, cycles[i])
		}
	}
}

func TestCyclesBackfillRegardlessOfRxOrder(t *testing.T) {
	// Block B first: the block A channel must still land in the same cycle.
	layout, err := NewPinLayout([]Pin{RxTx4, RxTx0}, []Pin{Tx8}, nil, nil)
	if err != nil {
		t.Fatalf("NewPinLayout failed: %v", err)
	}

	cycles := layout.Cycles()
	want := Cycle{Tx: Tx8, ProxA: 1, ProxB: 0}
	if cycles[0] != want {
		t.Errorf("cycle 0 = %+v, want %+v", cycles[0], want)
	}
	if !cycles[1].empty() {
		t.Errorf("cycle 1 = %+v, want empty", cycles[1])
	}
}

func TestCyclesSameBlockNeedsDistinctCycles(t *testing.T) {
	// Two block A electrodes on the same Tx cannot share a cycle.
	layout, err := NewPinLayout([]Pin{RxTx0, RxTx1}, []Pin{Tx8}, nil, nil)
	if err != nil {
		t.Fatalf("NewPinLayout failed: %v", err)
	}

	cycles := layout.Cycles()
	want := []Cycle{
		{Tx: Tx8, ProxA: 0, ProxB: UnusedChannel},
		{Tx: Tx8, ProxA: 1, ProxB: UnusedChannel},
	}
	for i, w := range want {
		if cycles[i] != w {
			t.Errorf("cycle %d = %+v, want %+v", i, cycles[i], w)
		}
	}
}

func TestCyclesSkipsNonBlockRx(t *testing.T) {
	// Tx8 used as an Rx electrode belongs to neither prox block: it consumes
	// a channel index but never occupies a slot.
	layout, err := NewPinLayout([]Pin{RxTx0, Tx8}, []Pin{Tx9, Tx10}, nil, nil)
	if err != nil {
		t.Fatalf("NewPinLayout failed: %v", err)
	}

	cycles := layout.Cycles()
	want := []Cycle{
		{Tx: Tx9, ProxA: 0, ProxB: UnusedChannel},
		{Tx: Tx10, ProxA: 2, ProxB: UnusedChannel},
	}
	for i, w := range want {
		if cycles[i] != w {
			t.Errorf("cycle %d = %+v, want %+v", i, cycles[i], w)
		}
	}
}

func TestCycleBytesLayout(t *testing.T) {
	layout, err := NewPinLayout([]Pin{RxTx0, RxTx4}, []Pin{Tx8, Tx9}, nil, nil)
	if err != nil {
		t.Fatalf("NewPinLayout failed: %v", err)
	}

	b := layout.cycleBytes()
	if len(b) != 64 {
		t.Fatalf("cycle table is %d bytes, want 64", len(b))
	}
	for i := 0; i < MaxCycles; i++ {
		if b[i*3] != cycleHeader {
			t.Errorf("cycle %d header = %#02x, want %#02x", i, b[i*3], cycleHeader)
		}
	}
	if b[63] != cycleTerminator {
		t.Errorf("terminator byte = %#02x, want %#02x", b[63], cycleTerminator)
	}
	if b[1] != 0 || b[2] != 1 || b[4] != 2 || b[5] != 3 {
		t.Errorf("allocated slots = [%d %d %d %d], want [0 1 2 3]", b[1], b[2], b[4], b[5])
	}
	for i := 2; i < MaxCycles; i++ {
		if b[i*3+1] != UnusedChannel || b[i*3+2] != UnusedChannel {
			t.Errorf("cycle %d slots = [%#02x %#02x], want unused", i, b[i*3+1], b[i*3+2])
		}
	}
}

func TestCyclesFullMatrix(t *testing.T) {
	// A full 7x6 matrix has 42 channels, more than the 21 cycles can carry.
	layout, err := NewPinLayout(
		[]Pin{RxTx0, RxTx1, RxTx2, RxTx3, RxTx4, RxTx5, RxTx6},
		[]Pin{RxTx7, Tx8, Tx9, Tx10, Tx11, Tx12},
		nil, nil,
	)
	if err != nil {
		t.Fatalf("NewPinLayout failed: %v", err)
	}

	used := 0
	for _, c := range layout.Cycles() {
		if c.ProxA != UnusedChannel {
			used++
		}
		if c.ProxB != UnusedChannel {
			used++
		}
	}
	// 7 Rx per Tx: 4 in block A, 3 in block B, so each Tx wants 4 cycles
	// carrying 7 channels. Five Tx lines fill 20 cycles with 35 channels;
	// the sixth gets the single remaining cycle (one A, one B backfilled)
	// and the other 5 of its channels are dropped.
	if used != 37 {
		t.Errorf("allocated %d channels, want 37", used)
	}
}

func TestNewPinLayoutValidation(t *testing.T) {
	cases := []struct {
		name string
		rx   []Pin
		tx   []Pin
		aRx  []Pin
		aTx  []Pin
	}{
		{
			name: "too many pads",
			rx:   []Pin{RxTx0, RxTx1, RxTx2, RxTx3, RxTx4, RxTx5, RxTx6, RxTx7},
			tx:   []Pin{Tx8, Tx9, Tx10, Tx11, Tx12, RxTx0},
		},
		{
			name: "rx and tx overlap",
			rx:   []Pin{RxTx0, RxTx1},
			tx:   []Pin{RxTx1, Tx8},
		},
		{
			name: "alp rx outside trackpad rx",
			rx:   []Pin{RxTx0},
			tx:   []Pin{Tx8},
			aRx:  []Pin{RxTx1},
		},
		{
			name: "alp tx outside trackpad tx",
			rx:   []Pin{RxTx0},
			tx:   []Pin{Tx8},
			aTx:  []Pin{Tx9},
		},
	}

	for _, tc := range cases {
		if _, err := NewPinLayout(tc.rx, tc.tx, tc.aRx, tc.aTx); err == nil {
			t.Errorf("%s: NewPinLayout accepted an invalid layout", tc.name)
		}
	}
}

func TestMappingAndMasks(t *testing.T) {
	layout, err := NewPinLayout(
		[]Pin{RxTx2, RxTx3},
		[]Pin{Tx8, Tx9},
		[]Pin{RxTx2},
		[]Pin{Tx9},
	)
	if err != nil {
		t.Fatalf("NewPinLayout failed: %v", err)
	}

	m := layout.mapping()
	want := [MaxPins + 1]byte{2, 3, 8, 9}
	if m != want {
		t.Errorf("mapping = %v, want %v", m, want)
	}

	if mask := layout.alpRxMask(); mask != 1<<2 {
		t.Errorf("alpRxMask = %#02x, want %#02x", mask, 1<<2)
	}
	if mask := layout.alpTxMask(); mask != 1<<9 {
		t.Errorf("alpTxMask = %#04x, want %#04x", mask, 1<<9)
	}
}
