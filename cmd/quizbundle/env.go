package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-quizbundle/internal/verify"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Environ func() []string // process environment, as os.Environ

	// NewLoader opens the browser used by verify. The caller closes it.
	NewLoader func(timeout time.Duration) (pageLoader, error)
}

// pageLoader is a verify.Loader that holds resources.
type pageLoader interface {
	verify.Loader
	Close() error
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Environ: os.Environ,
		NewLoader: func(timeout time.Duration) (pageLoader, error) {
			return verify.NewBrowser(timeout), nil
		},
	}
}
