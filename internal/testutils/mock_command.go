// Package testutils provides mock commands, recording collaborators and golden
// file helpers for deploykit testing.
package testutils

import (
	"context"
	"fmt"
	"sync/atomic"

	"deploykit/pkg/deploytypes"
)

// MockCommand implements deploytypes.Command for testing.
// Bound values are kept in Args; the zero value has no bindings.
type MockCommand struct {
	Descriptor deploytypes.CommandDescriptor
	Args       map[string]string
	BindErr    error
	ExecuteFn  func(ctx context.Context, args map[string]string) (deploytypes.Result, error)

	bindCalls *atomic.Int64
}

// NewMockCommand creates a mock with the given canonical name and declared arguments.
func NewMockCommand(name string, argumentNames ...string) *MockCommand {
	return &MockCommand{
		Descriptor: deploytypes.CommandDescriptor{
			CanonicalName: name,
			ArgumentNames: argumentNames,
			Usage:         fmt.Sprintf("deploy %s", name),
			Description:   fmt.Sprintf("Mock command: %s", name),
		},
		bindCalls: &atomic.Int64{},
	}
}

// WithAliases sets the alternative names and returns the mock.
func (m *MockCommand) WithAliases(aliases ...string) *MockCommand {
	m.Descriptor.AlternativeNames = aliases
	return m
}

func (m *MockCommand) Describe() deploytypes.CommandDescriptor {
	return m.Descriptor
}

func (m *MockCommand) Bind(args map[string]string) (deploytypes.Command, error) {
	if m.bindCalls != nil {
		m.bindCalls.Add(1)
	}
	if m.BindErr != nil {
		return nil, m.BindErr
	}
	bound := *m
	bound.Args = make(map[string]string, len(args))
	for k, v := range args {
		bound.Args[k] = v
	}
	return &bound, nil
}

func (m *MockCommand) Execute(ctx context.Context) (deploytypes.Result, error) {
	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, m.Args)
	}
	return deploytypes.Success(m.Descriptor.CanonicalName), nil
}

// BindCalls returns how many times Bind was called on this mock or any of its bound copies.
func (m *MockCommand) BindCalls() int {
	if m.bindCalls == nil {
		return 0
	}
	return int(m.bindCalls.Load())
}
