package cli

import (
	"os"

	"golang.org/x/term"
)

// Terminal switches an input device into raw mode.
type Terminal interface {
	// MakeRaw enters raw mode and returns the function that restores the
	// previous mode. Devices that are not terminals return a no-op restore.
	MakeRaw() (restore func() error, err error)
}

// FDTerminal is a Terminal backed by a file descriptor.
type FDTerminal struct {
	FD int
}

// StdinTerminal returns the Terminal for the process's standard input.
func StdinTerminal() *FDTerminal {
	return &FDTerminal{FD: int(os.Stdin.Fd())}
}

// MakeRaw implements Terminal.
func (t *FDTerminal) MakeRaw() (func() error, error) {
	if !term.IsTerminal(t.FD) {
		return func() error { return nil }, nil
	}

	state, err := term.MakeRaw(t.FD)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(t.FD, state) }, nil
}
