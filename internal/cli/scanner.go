// Package cli provides interactive terminal input for the installer.
package cli

import "io"

// Control bytes recognised by the masked-input scanner.
const (
	keyInterrupt = 0x03 // Ctrl-C
	keyEOT       = 0x04 // Ctrl-D
	keyBackspace = 0x08 // Ctrl-H
	keyNewline   = '\n'
	keyReturn    = '\r'
	keyEscape    = 0x1b
	keyDelete    = 0x7f
)

// DefaultMask is echoed once per accepted character.
const DefaultMask = '*'

// eraseSequence moves the cursor back over one mask character and blanks it.
const eraseSequence = "\b \b"

// Status reports where the scanner is after consuming a chunk.
type Status int

const (
	// StatusPending means more input is needed.
	StatusPending Status = iota
	// StatusDone means a terminator was read; Secret holds the result.
	StatusDone
	// StatusInterrupted means the user pressed Ctrl-C.
	StatusInterrupted
)

// keyClass is the input class of a single byte.
type keyClass int

const (
	classIgnore keyClass = iota
	classPrintable
	classErase
	classTerminate
	classCancel
	classEscape
)

// escState tracks progress through a terminal escape sequence.
type escState int

const (
	escNone  escState = iota
	escStart          // saw ESC
	escCSI            // saw ESC [ ; waiting for final byte
	escSS3            // saw ESC O ; one more byte follows
)

func classify(b byte) keyClass {
	switch {
	case b == keyInterrupt:
		return classCancel
	case b == keyReturn, b == keyNewline, b == keyEOT:
		return classTerminate
	case b == keyDelete, b == keyBackspace:
		return classErase
	case b == keyEscape:
		return classEscape
	case b >= 0x20 && b <= 0x7e:
		return classPrintable
	default:
		return classIgnore
	}
}

// Scanner is the masked-input state machine. Each Feed call consumes one raw
// chunk as read from the terminal; a chunk may hold many keystrokes (paste).
// The zero value is ready to use.
type Scanner struct {
	buf    []byte
	esc    escState
	status Status
}

// Feed processes a chunk byte by byte, writing the visible echo to echo.
// Bytes after a terminator or interrupt in the same chunk are discarded.
func (s *Scanner) Feed(chunk []byte, echo io.Writer, mask byte) Status {
	for _, b := range chunk {
		if s.status != StatusPending {
			break
		}
		if s.consumeEscape(b) {
			continue
		}

		switch classify(b) {
		case classPrintable:
			s.buf = append(s.buf, b)
			_, _ = echo.Write([]byte{mask})
		case classErase:
			if len(s.buf) > 0 {
				s.buf = s.buf[:len(s.buf)-1]
				_, _ = io.WriteString(echo, eraseSequence)
			}
		case classTerminate:
			s.status = StatusDone
		case classCancel:
			s.status = StatusInterrupted
		case classEscape:
			s.esc = escStart
		case classIgnore:
		}
	}
	return s.status
}

// consumeEscape swallows bytes belonging to an escape sequence (arrow keys,
// bracketed-paste markers, Alt-modified keys). It reports whether b was consumed.
func (s *Scanner) consumeEscape(b byte) bool {
	switch s.esc {
	case escStart:
		switch b {
		case '[':
			s.esc = escCSI
		case 'O':
			s.esc = escSS3
		case keyEscape:
			// ESC ESC: stay in escStart
		default:
			// Alt-modified printable key; control bytes keep their meaning.
			s.esc = escNone
			return classify(b) == classPrintable
		}
		return true
	case escCSI:
		if b < 0x20 {
			// Control byte aborts the sequence and is handled normally.
			s.esc = escNone
			return false
		}
		if b >= 0x40 && b <= 0x7e {
			s.esc = escNone
		}
		return true
	case escSS3:
		s.esc = escNone
		return classify(b) == classPrintable
	}
	return false
}

// Status returns the current scanner status.
func (s *Scanner) Status() Status {
	return s.status
}

// Secret returns the accepted characters so far.
func (s *Scanner) Secret() string {
	return string(s.buf)
}

// Len returns the number of buffered characters.
func (s *Scanner) Len() int {
	return len(s.buf)
}
