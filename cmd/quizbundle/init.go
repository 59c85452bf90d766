package main

import (
	"errors"
	"fmt"

	"github.com/alnah/go-quizbundle/internal/config"
	"github.com/alnah/go-quizbundle/internal/fileutil"
)

// ErrConfigExists is returned by init when the target file is already present.
var ErrConfigExists = errors.New("config file already exists")

// runInit writes the default configuration as YAML.
func runInit(args []string, env *Environment) error {
	flags, err := parseInitFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	if !flags.force && fileutil.FileExists(flags.output) {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, flags.output)
	}

	data, err := config.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	if err := fileutil.WriteOutput(flags.output, string(data)); err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "Wrote %s\n", flags.output)
	return nil
}
