package input

import (
	"bufio"
	"time"
	"unicode"
	"unicode/utf8"
)

// Stream delivers terminal input bytes via a channel and synthesizes key
// releases, since terminals only report presses (and auto-repeat).
type Stream struct {
	ch          chan byte
	held        map[Key]time.Time // Last time each held key was seen
	releaseWait time.Duration
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// A key counts as released once no byte for it arrived within releaseAfter.
func StartStream(r *bufio.Reader, releaseAfter time.Duration) *Stream {
	s := newStream(releaseAfter)
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream(releaseAfter time.Duration) *Stream {
	return &Stream{
		ch:          make(chan byte, 128),
		held:        make(map[Key]time.Time),
		releaseWait: releaseAfter,
	}
}

// ReadEvents drains all available bytes from the stream (non-blocking) and
// returns the press and synthesized release events observed at now.
// closed reports that the underlying reader has ended.
func (s *Stream) ReadEvents(now time.Time) (events []Event, closed bool) {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.track(ParseKeys(buf), now), closed
}

// track turns parsed keys into events and releases keys that went quiet.
func (s *Stream) track(keys []Key, now time.Time) []Event {
	var events []Event
	for _, k := range keys {
		events = append(events, Event{Key: k, Action: Press})
		s.held[k] = now
	}
	for k, seen := range s.held {
		if now.Sub(seen) >= s.releaseWait {
			events = append(events, Event{Key: k, Action: Release})
			delete(s.held, k)
		}
	}
	return events
}

// Reset forgets all held keys without emitting releases.
func (s *Stream) Reset() {
	clear(s.held)
}

// ParseKeys decodes raw terminal bytes into keys. Arrow keys arrive as CSI
// escape sequences; printable characters are lowercased.
func ParseKeys(buf []byte) []Key {
	var keys []Key
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			var k Key
			switch buf[i+2] {
			case 'A':
				k = KeyUp
			case 'B':
				k = KeyDown
			case 'C':
				k = KeyRight
			case 'D':
				k = KeyLeft
			}
			if k != "" {
				keys = append(keys, k)
				i += 2
				continue
			}
		}

		switch b {
		case '\x1b':
			keys = append(keys, KeyEscape)
		case '\x03':
			keys = append(keys, KeyCtrlC)
		case '\r', '\n':
			keys = append(keys, KeyEnter)
		case ' ':
			keys = append(keys, KeySpace)
		default:
			r, size := utf8.DecodeRune(buf[i:])
			if r == utf8.RuneError || !unicode.IsPrint(r) {
				continue
			}
			keys = append(keys, Key(string(unicode.ToLower(r))))
			i += size - 1
		}
	}
	return keys
}
