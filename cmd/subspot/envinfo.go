package main

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"
)

type envInfo struct {
	platform string
	term     string
	noColor  bool
	tty      bool
	cols     int
	rows     int
}

func readEnvInfo() envInfo {
	info := envInfo{
		platform: platformLabel(),
		term:     os.Getenv("TERM"),
		noColor:  os.Getenv("NO_COLOR") != "",
		tty:      term.IsTerminal(int(os.Stdout.Fd())),
	}
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		cols = 0
		rows = 0
	}
	info.cols = cols
	info.rows = rows
	return info
}

func envSummary() string {
	info := readEnvInfo()
	return fmt.Sprintf("Detected platform=%s TERM=%s tty=%t size=%dx%d", info.platform, info.term, info.tty, info.cols, info.rows)
}

func platformLabel() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS"
	case "linux":
		return "Linux"
	default:
		return runtime.GOOS
	}
}
