package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	var (
		scenePath  = flag.String("scene", "", "scene script to evaluate")
		aperture   = flag.Float64("aperture", 10, "snap aperture in pixels")
		logLevel   = flag.String("log-level", "info", "debug|info|warn|error")
		logFile    = flag.String("log-file", "", "optional rotating log file")
		jsonOutput = flag.Bool("json", false, "print probe results as JSON lines")
	)
	flag.Parse()

	logger := newLogger(*logLevel, *logFile)
	slog.SetDefault(logger)

	source := ""
	if *scenePath != "" {
		data, err := os.ReadFile(*scenePath)
		if err != nil {
			logger.Error("cannot read scene", "path", *scenePath, "err", err)
			os.Exit(1)
		}
		source = string(data)
	}

	app := NewApp(logger)
	load := app.LoadScene(source)
	if len(load.Errors) > 0 {
		for _, e := range load.Errors {
			logger.Error("scene error", "line", e.Line, "message", e.Message)
		}
		os.Exit(1)
	}
	logger.Info("scene loaded", "entities", load.Entities)

	// Remaining arguments are probe positions: x,y pairs.
	for _, arg := range flag.Args() {
		x, y, err := parseProbe(arg)
		if err != nil {
			logger.Error("bad probe", "arg", arg, "err", err)
			os.Exit(1)
		}
		printProbe(app.Probe(x, y, *aperture), x, y, *jsonOutput)
	}
}

func newLogger(level, file string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	var w io.Writer = os.Stderr
	if file != "" {
		w = &lj.Logger{Filename: file, MaxSize: 10, MaxBackups: 3, Compress: true}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func parseProbe(arg string) (x, y float64, err error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want x,y")
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, err
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func printProbe(res ProbeResult, x, y float64, asJSON bool) {
	if asJSON {
		data, err := json.Marshal(res)
		if err == nil {
			fmt.Println(string(data))
		}
		return
	}
	if !res.Valid {
		fmt.Printf("(%g, %g): no snap\n", x, y)
		return
	}
	b := res.Best
	fmt.Printf("(%g, %g): %s at (%g, %g), %d candidate(s)\n",
		x, y, b.Kind, b.Point.X, b.Point.Y, len(res.Candidates))
}
