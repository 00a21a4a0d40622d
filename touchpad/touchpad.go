// Package touchpad turns raw IQS7211E reports into higher level touch
// events: per-slot start/move/end transitions plus the gesture and status
// data captured in the same communication window.
package touchpad

import (
	"github.com/mvera/iqs7211e"
)

// controller is the raw report source. *iqs7211e.Device satisfies it.
type controller interface {
	Report() (iqs7211e.Report, error)
}

// TouchPhase describes how a contact changed compared to the previous frame.
type TouchPhase int

// Touch phases.
const (
	// Start marks a new contact on the surface.
	Start TouchPhase = iota
	// Move marks an existing contact that moved or changed pressure.
	Move
	// End marks a contact that was lifted.
	End
)

func (p TouchPhase) String() string {
	switch p {
	case Start:
		return "start"
	case Move:
		return "move"
	case End:
		return "end"
	}
	return "unknown"
}

// ContactSlot identifies one of the two hardware contact slots. The firmware
// assigns contacts to slots and may reshuffle the assignment as fingers
// appear and vanish, so treat slots as unnamed channels rather than specific
// fingers.
type ContactSlot int

// Contact slots.
const (
	Primary ContactSlot = iota
	Secondary
)

func (s ContactSlot) String() string {
	if s == Primary {
		return "primary"
	}
	return "secondary"
}

// Touch is one contact transition. For End the point holds the last position
// the contact was seen at; for Start and Move it holds the current one.
type Touch struct {
	Slot  ContactSlot
	Phase TouchPhase
	Point iqs7211e.Finger
}

// Changes holds at most one transition per contact slot.
type Changes struct {
	primary   *Touch
	secondary *Touch
}

// Primary returns the primary slot transition, or nil if the slot did not
// change.
func (c Changes) Primary() *Touch { return c.primary }

// Secondary returns the secondary slot transition, or nil if the slot did
// not change.
func (c Changes) Secondary() *Touch { return c.secondary }

// Touches returns the transitions in slot order.
func (c Changes) Touches() []Touch {
	var out []Touch
	if c.primary != nil {
		out = append(out, *c.primary)
	}
	if c.secondary != nil {
		out = append(out, *c.secondary)
	}
	return out
}

// Empty reports whether no slot changed.
func (c Changes) Empty() bool {
	return c.primary == nil && c.secondary == nil
}

// State is the set of active contacts after a frame.
type State struct {
	primary   *iqs7211e.Finger
	secondary *iqs7211e.Finger
}

// Primary returns the primary contact, or nil if the slot is empty.
func (s State) Primary() *iqs7211e.Finger { return s.primary }

// Secondary returns the secondary contact, or nil if the slot is empty.
func (s State) Secondary() *iqs7211e.Finger { return s.secondary }

// Count returns the number of active contacts.
func (s State) Count() int {
	n := 0
	if s.primary != nil {
		n++
	}
	if s.secondary != nil {
		n++
	}
	return n
}

// MultiTouch reports whether both slots carry a contact.
func (s State) MultiTouch() bool {
	return s.primary != nil && s.secondary != nil
}

// Frame is one processed report: the raw status word, the gesture if one was
// pending, the per-slot transitions and the resulting contact state.
type Frame struct {
	Info    iqs7211e.InfoFlags
	Gesture iqs7211e.Gesture
	Events  Changes
	State   State
}

// SessionStart reports whether this frame opened a touch session: the first
// contact just landed.
func (f Frame) SessionStart() bool {
	for _, t := range f.Events.Touches() {
		if t.Phase == Start && f.State.Count() == 1 {
			return true
		}
	}
	return false
}

// SessionEnd reports whether this frame closed a touch session: the last
// contact just lifted.
func (f Frame) SessionEnd() bool {
	for _, t := range f.Events.Touches() {
		if t.Phase == End && f.State.Count() == 0 {
			return true
		}
	}
	return false
}

// Touchpad is a facade over a device that tracks contact state across
// frames. Not safe for concurrent use.
type Touchpad struct {
	ctrl     controller
	previous [2]iqs7211e.Finger
}

// New wraps a device. The device should already be initialized.
func New(d *iqs7211e.Device) *Touchpad {
	return newTouchpad(d)
}

func newTouchpad(ctrl controller) *Touchpad {
	return &Touchpad{
		ctrl:     ctrl,
		previous: [2]iqs7211e.Finger{iqs7211e.AbsentFinger(), iqs7211e.AbsentFinger()},
	}
}

// NextFrame blocks until the device reports, then classifies each contact
// slot against the previous frame.
func (t *Touchpad) NextFrame() (Frame, error) {
	report, err := t.ctrl.Report()
	if err != nil {
		return Frame{}, err
	}

	events := Changes{
		primary:   classifyTransition(Primary, t.previous[0], report.Fingers[0]),
		secondary: classifyTransition(Secondary, t.previous[1], report.Fingers[1]),
	}
	state := State{
		primary:   activeContact(report.Fingers[0]),
		secondary: activeContact(report.Fingers[1]),
	}
	t.previous = report.Fingers

	return Frame{
		Info:    report.Info,
		Gesture: report.Gesture,
		Events:  events,
		State:   state,
	}, nil
}

func activeContact(f iqs7211e.Finger) *iqs7211e.Finger {
	if !f.Present() {
		return nil
	}
	return &f
}

// classifyTransition compares one slot across two frames. An unchanged
// present contact yields no transition.
func classifyTransition(slot ContactSlot, previous, current iqs7211e.Finger) *Touch {
	switch {
	case !previous.Present() && !current.Present():
		return nil
	case !previous.Present():
		return &Touch{Slot: slot, Phase: Start, Point: current}
	case !current.Present():
		return &Touch{Slot: slot, Phase: End, Point: previous}
	case previous != current:
		return &Touch{Slot: slot, Phase: Move, Point: current}
	}
	return nil
}
