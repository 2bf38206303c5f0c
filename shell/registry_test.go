package shell

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	var got Args
	cmd := registry.Register("test_command", "arg", func(_ io.Writer, args Args) error {
		got = args
		return nil
	})
	assert.Equal(t, "test_command", cmd.Name)

	found, ok := registry.Lookup("test_command")
	require.True(t, ok)
	assert.Same(t, cmd, found)

	require.NoError(t, registry.Dispatch(io.Discard, []string{"test_command", "1", "2"}))
	assert.Equal(t, Args{"1", "2"}, got)

	assert.ErrorIs(t, registry.Dispatch(io.Discard, []string{"nope"}), errUnknownCommand)
	assert.NoError(t, registry.Dispatch(io.Discard, nil))
}

func TestRegistryKeepsFirst(t *testing.T) {
	registry := NewRegistry()

	first := registry.Register("a", "one", nil)
	second := registry.Register("a", "two", nil)
	registry.Register("b", "", nil)

	assert.Same(t, first, second)
	assert.Equal(t, 2, registry.Count())
	assert.Equal(t, "  a one\n  b\n", registry.Usage())
	assert.ErrorIs(t, registry.Dispatch(io.Discard, []string{"a"}), errUnknownCommand)
}

func TestArgs(t *testing.T) {
	args := Args{"12", "-3.5", "x", "1"}

	n, err := args.Int(0)
	require.NoError(t, err)
	assert.Equal(t, int32(12), n)

	f, err := args.Float(1)
	require.NoError(t, err)
	assert.Equal(t, -3.5, f)

	_, err = args.Int(1)
	assert.EqualError(t, err, "invalid integer '-3.5'")
	_, err = args.Float(2)
	assert.EqualError(t, err, "invalid number 'x'")

	on, err := args.Bool(3)
	require.NoError(t, err)
	assert.True(t, on)

	// missing arguments read as zero
	n, err = args.Int(9)
	require.NoError(t, err)
	assert.Zero(t, n)
	f, err = args.Float(9)
	require.NoError(t, err)
	assert.Zero(t, f)
}
