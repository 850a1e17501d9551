package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"deploykit/pkg/deploytypes"
)

func flag(name string) deploytypes.ParsedArgument {
	return deploytypes.ParsedArgument{Name: name}
}

func valued(name, value string) deploytypes.ParsedArgument {
	return deploytypes.ParsedArgument{Name: name, Value: value, HasValue: true}
}

func TestParseParameters(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []deploytypes.ParsedArgument
	}{
		{
			name:     "separate value then flag",
			args:     []string{"-id", "Foo", "-force"},
			expected: []deploytypes.ParsedArgument{valued("id", "Foo"), flag("force")},
		},
		{
			name:     "colon inline value",
			args:     []string{"-version:1.2.0"},
			expected: []deploytypes.ParsedArgument{valued("version", "1.2.0")},
		},
		{
			name:     "equals inline value",
			args:     []string{"--source=https://example.org/feed"},
			expected: []deploytypes.ParsedArgument{valued("source", "https://example.org/feed")},
		},
		{
			name:     "first separator wins",
			args:     []string{"-file:C:\\packages\\a.nupkg"},
			expected: []deploytypes.ParsedArgument{valued("file", "C:\\packages\\a.nupkg")},
		},
		{
			name:     "slash modifier",
			args:     []string{"/id", "Foo"},
			expected: []deploytypes.ParsedArgument{valued("id", "Foo")},
		},
		{
			name:     "empty inline value",
			args:     []string{"-apikey:"},
			expected: []deploytypes.ParsedArgument{valued("apikey", "")},
		},
		{
			name:     "quoted inline value",
			args:     []string{"-name:\"main feed\""},
			expected: []deploytypes.ParsedArgument{valued("name", "main feed")},
		},
		{
			name:     "consecutive flags",
			args:     []string{"-force", "-prerelease"},
			expected: []deploytypes.ParsedArgument{flag("force"), flag("prerelease")},
		},
		{
			name:     "inline value does not consume following token",
			args:     []string{"-id:Foo", "Bar", "-force"},
			expected: []deploytypes.ParsedArgument{valued("id", "Foo"), flag("force")},
		},
		{
			name:     "leading bare token dropped",
			args:     []string{"stray", "-id", "Foo"},
			expected: []deploytypes.ParsedArgument{valued("id", "Foo")},
		},
		{
			name:     "bare modifiers dropped",
			args:     []string{"-", "--", "/", "-:x", "-id", "Foo"},
			expected: []deploytypes.ParsedArgument{valued("id", "Foo")},
		},
		{
			name:     "duplicates preserved in order",
			args:     []string{"-id", "A", "-id:B"},
			expected: []deploytypes.ParsedArgument{valued("id", "A"), valued("id", "B")},
		},
		{
			name:     "value that looks like an argument is not consumed",
			args:     []string{"-output", "/tmp/out"},
			expected: []deploytypes.ParsedArgument{flag("output"), flag("tmp/out")},
		},
		{
			name:     "empty input",
			args:     []string{},
			expected: []deploytypes.ParsedArgument{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseParameters(tt.args))
		})
	}
}

func TestParseParameters_NilInput(t *testing.T) {
	assert.Empty(t, ParseParameters(nil))
}

func TestParseParameters_Restartable(t *testing.T) {
	args := []string{"-id", "Foo", "-force"}

	first := ParseParameters(args)
	second := ParseParameters(args)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"-id", "Foo", "-force"}, args, "input must not be modified")
}

func TestParseParametersFunc_ReportsDiscardedTokens(t *testing.T) {
	var dropped []string
	parsed := ParseParametersFunc([]string{"stray", "-id:Foo", "Bar", "-", "-force"}, func(token string) {
		dropped = append(dropped, token)
	})

	assert.Equal(t, []deploytypes.ParsedArgument{valued("id", "Foo"), flag("force")}, parsed)
	assert.Equal(t, []string{"stray", "Bar", "-"}, dropped)
}
