package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"bank-admin-go/internal/views"
)

// terminalHost asks for confirmation on the terminal. A failed delete is
// reported and asked again until the user declines.
type terminalHost struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func newTerminalHost(in *bufio.Reader, out io.Writer, assumeYes bool) *terminalHost {
	return &terminalHost{in: in, out: out, assumeYes: assumeYes}
}

func (h *terminalHost) Open(ctx context.Context, d views.Dialog) views.Dismissal {
	for d.State() == views.Pending {
		if !h.confirmed(d.Prompt()) {
			d.Cancel()
			break
		}

		if err := d.Confirm(ctx); err != nil {
			fmt.Fprintln(h.out, err)
			if h.assumeYes || ctx.Err() != nil {
				d.Cancel()
			}
		}
	}

	return d.Result()
}

func (h *terminalHost) confirmed(prompt string) bool {
	if h.assumeYes {
		return true
	}

	fmt.Fprintf(h.out, "%s [y/N] ", prompt)
	answer, err := h.in.ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(h.out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
