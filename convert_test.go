package argvester

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoolConversionIsStrict(t *testing.T) {
	type schema struct {
		Ready bool
	}
	av := mustNew[schema](t)

	for _, bad := range []string{"True", "1", "yes", ""} {
		_, err := av.Parse([]string{bad})
		var ce *ConversionError
		require.ErrorAs(t, err, &ce, "input %q", bad)
	}

	got, err := av.Parse([]string{"false"})
	require.NoError(t, err)
	assert.False(t, got.Ready)
}

func TestIntConversionUses32BitBounds(t *testing.T) {
	type schema struct {
		Count int
	}
	av := mustNew[schema](t)

	got, err := av.Parse([]string{"2147483647"})
	require.NoError(t, err)
	assert.Equal(t, 2147483647, got.Count)

	_, err = av.Parse([]string{"2147483648"})
	var ce *ConversionError
	require.ErrorAs(t, err, &ce)
}

func TestEnumConversionIsCaseSensitive(t *testing.T) {
	type schema struct {
		Color string `arg:"enum=red|green|blue"`
	}
	av := mustNew[schema](t)

	got, err := av.Parse([]string{"blue"})
	require.NoError(t, err)
	assert.Equal(t, "blue", got.Color)

	_, err = av.Parse([]string{"Red"})
	var ce *ConversionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "color", ce.Field)
}

func TestNamedStringTypes(t *testing.T) {
	type logLevel string
	type schema struct {
		Level logLevel `arg:"enum=error|warning"`
		Path  *string
	}
	av := mustNew[schema](t)

	got, err := av.Parse([]string{"warning", "--path", "conf/app.toml"})
	require.NoError(t, err)
	assert.Equal(t, logLevel("warning"), got.Level)
	require.NotNil(t, got.Path)
	assert.Equal(t, "conf/app.toml", *got.Path)
}
