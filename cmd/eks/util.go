package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var red = color.New(color.FgRed).SprintFunc()

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "eks: %s\n", red(s))
	os.Exit(1)
}

// resolveTruecolor interprets the --truecolor flag. "auto" enables 24-bit
// color when stdout is a terminal advertising truecolor via COLORTERM.
func resolveTruecolor(mode string) (bool, error) {
	switch mode {
	case "on", "true", "always":
		return true, nil
	case "off", "false", "never":
		return false, nil
	case "auto", "":
		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return false, nil
		}
		switch os.Getenv("COLORTERM") {
		case "truecolor", "24bit":
			return true, nil
		}
		return false, nil
	}
	return false, fmt.Errorf("expected auto, on, or off (got %q)", mode)
}
