// Package input turns raw terminal bytes into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key counts as held after its last byte.
// Terminals only report key repeats, so holds are inferred from them.
const keyHoldDuration = 80 * time.Millisecond

// Input represents the current frame's input state. Left, Right and Fire are
// hold states; the rest are set only in the frame their byte arrived.
type Input struct {
	Left    bool
	Right   bool
	Fire    bool
	Pause   bool
	Restart bool
	Enter   bool
	Quit    bool
	Pressed []byte
}

// keyState tracks the last time each hold key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	fire  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for holds.
type Stream struct {
	ch    chan byte
	state keyState
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

// ReadInput drains all available bytes from the stream without blocking.
// A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	buf, closed := s.drain()
	in := parseInput(&s.state, buf, time.Now())
	if closed {
		in.Quit = true
	}
	return in
}

// ResetKeyInput forgets every held key, e.g. when a new game starts.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

func (s *Stream) drain() (buf []byte, closed bool) {
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				return buf, true
			}
			buf = append(buf, b)
		default:
			return buf, false
		}
	}
}

// parseInput applies the bytes received this frame and derives the frame's input.
func parseInput(state *keyState, buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C': // Right arrow
				state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				state.left = now
				i += 2
				continue
			case 'A', 'B': // Up and down arrows are unused
				i += 2
				continue
			}
		}

		applyByte(state, &in, b, now)
	}

	in.Left = now.Sub(state.left) < keyHoldDuration
	in.Right = now.Sub(state.right) < keyHoldDuration
	in.Fire = now.Sub(state.fire) < keyHoldDuration
	return in
}

// applyByte updates hold timestamps and single-frame flags for one byte.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ':
		state.fire = now
	case 'p', 'P':
		in.Pause = true
	case 'r', 'R':
		in.Restart = true
	case '\n', '\r':
		in.Enter = true
	case 'q', 'Q', '\x03': // Ctrl+C arrives as a byte in raw mode
		in.Quit = true
	}
}
