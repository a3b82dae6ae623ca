// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// palette holds the colours of every output mode.
type palette struct {
	kind   *color.Color // token, event and node names
	value  *color.Color // scalar values
	tag    *color.Color
	anchor *color.Color
	mark   *color.Color // source positions
	del    *color.Color
	ins    *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		kind:   color.New(color.FgCyan),
		value:  color.New(color.FgGreen),
		tag:    color.New(color.FgYellow),
		anchor: color.New(color.FgMagenta),
		mark:   color.New(color.Faint),
		del:    color.New(color.FgRed),
		ins:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.kind, p.value, p.tag, p.anchor, p.mark, p.del, p.ins} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// isTerminal reports whether w writes to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
