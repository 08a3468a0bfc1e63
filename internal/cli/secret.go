package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	ierrors "github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/errors"
)

// InterruptExitCode is the exit status used when secret entry is cancelled.
const InterruptExitCode = 130

// lineBreak is emitted on termination. Raw mode disables output post-processing,
// so a bare newline would not return the carriage.
const lineBreak = "\r\n"

const readChunkSize = 256

// SecretReader reads a secret from a terminal while echoing a mask
// character per keystroke.
type SecretReader struct {
	In       io.Reader
	Out      io.Writer
	Terminal Terminal
	Mask     byte

	// Exit terminates the process on interrupt. It defaults to os.Exit.
	Exit func(code int)

	// Signals are watched while raw mode is active so the terminal is
	// restored on forced termination too. Nil means SIGINT and SIGTERM.
	Signals []os.Signal
}

// NewSecretReader returns a SecretReader bound to the process's stdin/stdout.
func NewSecretReader() *SecretReader {
	return &SecretReader{
		In:       os.Stdin,
		Out:      os.Stdout,
		Terminal: StdinTerminal(),
		Mask:     DefaultMask,
		Exit:     os.Exit,
	}
}

// ReadSecret writes prompt, then reads keystrokes until Enter, Ctrl-D or end
// of input and returns the accepted characters. Ctrl-C restores the terminal
// and exits the process; ReadSecret only returns in that case when Exit does.
func (r *SecretReader) ReadSecret(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(r.Out, prompt)
	}

	restore, err := r.Terminal.MakeRaw()
	if err != nil {
		return "", fmt.Errorf("entering raw mode: %w", err)
	}

	var once sync.Once
	release := func() {
		once.Do(func() { _ = restore() })
	}
	defer release()

	stopWatch := r.watchSignals(release)
	defer stopWatch()

	var sc Scanner
	chunk := make([]byte, readChunkSize)
	for {
		n, readErr := r.In.Read(chunk)
		if n > 0 {
			switch sc.Feed(chunk[:n], r.Out, r.mask()) {
			case StatusDone:
				fmt.Fprint(r.Out, lineBreak)
				return sc.Secret(), nil
			case StatusInterrupted:
				fmt.Fprint(r.Out, lineBreak)
				release()
				r.exit(InterruptExitCode)
				return "", ierrors.SecretInterrupted()
			}
		}
		if errors.Is(readErr, io.EOF) {
			fmt.Fprint(r.Out, lineBreak)
			return sc.Secret(), nil
		}
		if readErr != nil {
			return "", fmt.Errorf("reading secret: %w", readErr)
		}
	}
}

// watchSignals restores the terminal and exits if a termination signal
// arrives while raw mode is held. The returned func stops watching.
func (r *SecretReader) watchSignals(release func()) func() {
	signals := r.Signals
	if signals == nil {
		signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)
	done := make(chan struct{})

	go func() {
		select {
		case <-ch:
			release()
			fmt.Fprint(r.Out, lineBreak)
			r.exit(InterruptExitCode)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}

func (r *SecretReader) mask() byte {
	if r.Mask == 0 {
		return DefaultMask
	}
	return r.Mask
}

func (r *SecretReader) exit(code int) {
	if r.Exit != nil {
		r.Exit(code)
		return
	}
	os.Exit(code)
}
