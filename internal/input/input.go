package input

import (
	"bufio"
)

// Key is a decoded terminal key press.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyFire
	KeyEnter
	KeyReset
	KeyQuit
	KeyFocusIn
	KeyFocusOut
)

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
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

// Drain returns all bytes available right now without blocking. ok is false
// once the underlying reader has failed and every byte has been consumed.
func (s *Stream) Drain() (buf []byte, ok bool) {
	if s.closed {
		return nil, false
	}
	for {
		select {
		case b, open := <-s.ch:
			if !open {
				s.closed = true
				return buf, len(buf) > 0
			}
			buf = append(buf, b)
		default:
			return buf, true
		}
	}
}

// Decode parses raw terminal bytes into key presses. Arrow keys arrive as
// CSI (ESC [) or SS3 (ESC O) sequences; focus reporting as ESC [ I and ESC [ O.
func Decode(buf []byte) []Key {
	var keys []Key
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
			key := KeyNone
			switch buf[i+2] {
			case 'A':
				key = KeyUp
			case 'B':
				key = KeyDown
			case 'C':
				key = KeyRight
			case 'D':
				key = KeyLeft
			case 'I':
				if buf[i+1] == '[' {
					key = KeyFocusIn
				}
			case 'O':
				if buf[i+1] == '[' {
					key = KeyFocusOut
				}
			}
			if key != KeyNone {
				keys = append(keys, key)
				i += 2
				continue
			}
		}

		keys = append(keys, decodeByte(b)...)
	}
	return keys
}

// decodeByte maps a single byte to its keys. The diagonal keys press two at once.
func decodeByte(b byte) []Key {
	switch b {
	case 'q', 'Q', '\x03':
		return []Key{KeyQuit}
	case 'a', 'A', 'j', 'J':
		return []Key{KeyLeft}
	case 'd', 'D', 'l', 'L':
		return []Key{KeyRight}
	case 'w', 'W', 'i', 'I':
		return []Key{KeyUp}
	case 's', 'S', 'k', 'K':
		return []Key{KeyDown}
	case 'u', 'U':
		return []Key{KeyUp, KeyLeft}
	case 'o', 'O':
		return []Key{KeyUp, KeyRight}
	case ' ':
		return []Key{KeyFire}
	case '\n', '\r':
		return []Key{KeyEnter}
	case 'r', 'R':
		return []Key{KeyReset}
	}
	return nil
}
