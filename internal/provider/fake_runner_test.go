package provider

import (
	"context"
	"errors"
)

type call struct {
	Name string
	Args []string
}

// fakeRunner records every call and answers from fixed fields.
type fakeRunner struct {
	HasExecutable bool
	Stdout        string
	OutputErr     error
	InstallErr    error

	LookPaths []string
	Outputs   []call
	Runs      []call
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	f.LookPaths = append(f.LookPaths, name)
	if !f.HasExecutable {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/local/bin/" + name, nil
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.Outputs = append(f.Outputs, call{Name: name, Args: args})
	return []byte(f.Stdout), f.OutputErr
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.Runs = append(f.Runs, call{Name: name, Args: args})
	return f.InstallErr
}
