// Package main provides rollcalc, a command-line front end to the rules
// engine: resolve tests, classify ranges, and generate or rescale NPC statblocks.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/percentile/internal/config"
	"github.com/cory-johannsen/percentile/internal/observability"
)

const usage = `usage: rollcalc [-config path] <command> [flags]

commands:
  resolve    resolve a simple, weapon, psychic or force field test
  range      classify a distance into a range bracket
  generate   generate an NPC statblock from a threat level
  rescale    rescale an NPC statblock between threat levels
`

// errUsage is returned for a missing or unknown command.
var errUsage = errors.New("rollcalc: invalid usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		log.Fatalf("rollcalc: %v", err)
	}
}

// app carries what every command needs.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	out    io.Writer
}

func run(args []string, out io.Writer) error {
	top := flag.NewFlagSet("rollcalc", flag.ContinueOnError)
	configPath := top.String("config", "", "path to configuration file; empty uses defaults and PERCENTILE_* environment overrides")
	if err := top.Parse(args); err != nil {
		return err
	}
	rest := top.Args()
	if len(rest) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}

	var cfg config.Config
	var err error
	if *configPath == "" {
		cfg, err = config.Default()
	} else {
		cfg, err = config.Load(*configPath)
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, zapcore.Lock(os.Stderr))
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	a := &app{cfg: cfg, logger: logger, out: out}
	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "resolve":
		return a.resolve(cmdArgs)
	case "range":
		return a.rangeCmd(cmdArgs)
	case "generate":
		return a.generate(cmdArgs)
	case "rescale":
		return a.rescale(cmdArgs)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// emit writes v to the app's output as YAML.
func (a *app) emit(v any) error {
	enc := yaml.NewEncoder(a.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return enc.Close()
}

// splitList parses a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
