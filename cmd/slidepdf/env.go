package main

import (
	"context"
	"io"
	"os"

	"github.com/porticus-lab/slidepdf"
)

// convertFunc runs one conversion and returns the written PDF path.
type convertFunc func(ctx context.Context, req slidepdf.Request, opts ...slidepdf.Option) (string, error)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Convert convertFunc
	Verify  func(path string) error
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Convert: convert,
		Verify:  slidepdf.VerifyLayout,
	}
}

func convert(ctx context.Context, req slidepdf.Request, opts ...slidepdf.Option) (string, error) {
	res, err := slidepdf.Convert(ctx, req, opts...)
	if err != nil {
		return "", err
	}
	return res.Path(), nil
}
