// Package input turns raw key activity into press/release events and maps
// those events onto ship velocity.
package input

import "strings"

// Key identifies a key by name. Printable keys use their lowercase character,
// so " " is the space bar.
type Key string

const (
	KeyLeft   Key = "ArrowLeft"
	KeyRight  Key = "ArrowRight"
	KeyUp     Key = "ArrowUp"
	KeyDown   Key = "ArrowDown"
	KeySpace  Key = " "
	KeyEnter  Key = "Enter"
	KeyEscape Key = "Escape"
	KeyCtrl   Key = "Control"
	KeyShift  Key = "Shift"
	KeyCtrlC  Key = "Control+c"
)

// ParseKey resolves a configured key name. Single characters are
// case-insensitive; a few spelled-out names are accepted for special keys.
func ParseKey(name string) (Key, bool) {
	if name == " " {
		return KeySpace, true
	}
	if name == "" || strings.TrimSpace(name) == "" {
		return "", false
	}
	if len([]rune(name)) == 1 {
		return Key(strings.ToLower(name)), true
	}
	switch strings.ToLower(name) {
	case "space", "spacebar":
		return KeySpace, true
	case "enter", "return":
		return KeyEnter, true
	case "control", "ctrl":
		return KeyCtrl, true
	case "shift":
		return KeyShift, true
	case "arrowup", "up":
		return KeyUp, true
	case "arrowdown", "down":
		return KeyDown, true
	case "arrowleft", "left":
		return KeyLeft, true
	case "arrowright", "right":
		return KeyRight, true
	}
	return "", false
}

// FromKeyName maps a physical key name as reported by window toolkits
// ("ArrowLeft", "Space", "A", "KeyA", "Digit1", "ControlLeft") onto a Key.
func FromKeyName(name string) (Key, bool) {
	switch name {
	case "ArrowLeft", "ArrowRight", "ArrowUp", "ArrowDown", "Enter", "Escape":
		return Key(name), true
	case "Space":
		return KeySpace, true
	case "ControlLeft", "ControlRight", "Control":
		return KeyCtrl, true
	case "ShiftLeft", "ShiftRight", "Shift":
		return KeyShift, true
	}
	name = strings.TrimPrefix(name, "Key")
	name = strings.TrimPrefix(name, "Digit")
	if len(name) == 1 {
		return Key(strings.ToLower(name)), true
	}
	return "", false
}

// Action is what happened to a key.
type Action int

const (
	Press Action = iota
	Release
)

// Event is a single key press or release.
type Event struct {
	Key    Key
	Action Action
}

// Velocity is the ship velocity controlled by input.
type Velocity struct {
	DX, DY float64
}

// Handle applies one event to the current velocity. Directional presses set
// the matching component to ±speed, releases zero it. fire reports whether
// the event is a press of the shoot key.
func Handle(ev Event, v Velocity, speed float64, shoot Key) (next Velocity, fire bool) {
	next = v
	dir := ev.Key
	if dir != shoot {
		dir = Direction(dir)
	}
	switch ev.Action {
	case Press:
		switch dir {
		case KeyLeft:
			next.DX = -speed
		case KeyRight:
			next.DX = speed
		case KeyUp:
			next.DY = -speed
		case KeyDown:
			next.DY = speed
		}
		fire = ev.Key == shoot
	case Release:
		switch dir {
		case KeyLeft, KeyRight:
			next.DX = 0
		case KeyUp, KeyDown:
			next.DY = 0
		}
	}
	return next, fire
}

// Direction maps WASD onto the arrow keys. Other keys are returned unchanged.
func Direction(k Key) Key {
	switch k {
	case "w":
		return KeyUp
	case "a":
		return KeyLeft
	case "s":
		return KeyDown
	case "d":
		return KeyRight
	}
	return k
}

// Bus dispatches events to subscribed handlers in subscription order.
type Bus struct {
	handlers []func(Event)
}

// Subscribe registers a handler for every published event.
func (b *Bus) Subscribe(h func(Event)) {
	b.handlers = append(b.handlers, h)
}

// Publish delivers ev to every handler.
func (b *Bus) Publish(ev Event) {
	for _, h := range b.handlers {
		h(ev)
	}
}

// Len returns the number of subscribed handlers.
func (b *Bus) Len() int {
	return len(b.handlers)
}
