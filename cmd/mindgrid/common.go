package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/mindgrid/internal/config"
	"github.com/vovakirdan/mindgrid/internal/core"
	"github.com/vovakirdan/mindgrid/internal/games/mindgrid"
	"github.com/vovakirdan/mindgrid/internal/registry"
)

// checkVariant exits with a hint when the variant is not registered.
func checkVariant(id string) {
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'mindgrid variants' to see available variants.")
		os.Exit(1)
	}
}

// runtimeConfig builds the session settings from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		FPS:        flagFPS,
		Seed:       flagSeed,
		Variant:    flagVariant,
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
		Player:     flagName,
	}.Normalize()
}

// engineFor loads a variant engine. The --config file only applies to the
// variant selected with --variant.
func engineFor(variant string) (*mindgrid.Engine, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return nil, err
	}
	path := ""
	if variant == flagVariant {
		path = flagConfig
	}
	return mindgrid.NewVariantEngine(variant, path, preset)
}

func logLevel() log.Level {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		return log.InfoLevel
	}
	return level
}

// newLogger returns a stderr logger for server and batch commands.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           logLevel(),
	})
}

// tuiLogger returns a logger for full-screen commands. Without --log-file
// it returns nil, which the TUI treats as silent.
func tuiLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return nil, func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return nil, func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "mindgrid",
		Level:           logLevel(),
	})
	return logger, func() { f.Close() }
}
