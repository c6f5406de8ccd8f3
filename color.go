package main

import (
	"os"

	"github.com/mattn/go-isatty"
)

// colorEnabled decides whether diagnostics written to f get ANSI colors.
// mode is auto, always or never.
func colorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func red(s string) string {
	return "\x1b[31m" + s + "\x1b[0m"
}

func bold(s string) string {
	return "\x1b[1m" + s + "\x1b[0m"
}
