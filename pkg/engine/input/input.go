package input

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Key is a generator control command
type Key int

// Key constants
const (
	KeyNone Key = iota
	KeyPause
	KeyRestart
	KeyAddRow
	KeySolve
	KeyScreenshot
	KeyDump
	KeyQuit
)

// String returns the name of the key
func (k Key) String() string {
	switch k {
	case KeyPause:
		return "pause"
	case KeyRestart:
		return "restart"
	case KeyAddRow:
		return "add-row"
	case KeySolve:
		return "solve"
	case KeyScreenshot:
		return "screenshot"
	case KeyDump:
		return "dump"
	case KeyQuit:
		return "quit"
	default:
		return "none"
	}
}

// Translate maps a single typed byte to a key
func Translate(b byte) Key {
	if b == 3 { // Ctrl+C in raw mode
		return Lookup("ctrl+c")
	}
	return Lookup(string(rune(b)))
}

// Keys puts the terminal into raw mode and streams key presses from stdin
// until ctx is done or stdin closes. The returned function restores the
// terminal and must be called.
func Keys(ctx context.Context) (<-chan Key, func(), error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot set terminal to raw mode: %w", err)
	}
	restore := func() { term.Restore(fd, oldState) }

	keys := make(chan Key)
	go func() {
		defer close(keys)
		ReadKeys(ctx, os.Stdin, keys)
	}()
	return keys, restore, nil
}

// ReadKeys translates bytes from r into keys until ctx is done or r fails.
// Escape sequences such as arrow keys are discarded.
func ReadKeys(ctx context.Context, r io.Reader, keys chan<- Key) {
	buf := make([]byte, 1)
	readByte := func() (byte, error) {
		_, err := io.ReadFull(r, buf)
		return buf[0], err
	}

	for {
		b, err := readByte()
		if err != nil {
			return
		}

		if b == 0x1b {
			skipEscapeSequence(readByte)
			continue
		}

		k := Translate(b)
		if k == KeyNone {
			continue
		}
		select {
		case keys <- k:
		case <-ctx.Done():
			return
		}
		if k == KeyQuit {
			return
		}
	}
}

// skipEscapeSequence consumes the rest of a CSI (ESC [) or SS3 (ESC O) sequence
func skipEscapeSequence(readByte func() (byte, error)) {
	b2, err := readByte()
	if err != nil {
		return
	}
	if b2 != '[' && b2 != 'O' {
		return
	}
	// parameters end with a final byte in the range 0x40-0x7e
	for {
		b, err := readByte()
		if err != nil || (b >= 0x40 && b <= 0x7e) {
			return
		}
	}
}
