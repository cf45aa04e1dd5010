package argvester

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew[R any](t *testing.T) *ArgVester[R] {
	t.Helper()
	av, err := New[R]()
	require.NoError(t, err)
	return av
}

func TestInferredKinds(t *testing.T) {
	type schema struct {
		ConfigFile  string
		BindAddress *string
		Verbose     *bool
		Filenames   []string
	}

	av := mustNew[schema](t)

	require.Len(t, av.positional, 1)
	assert.Equal(t, KindPositional, av.positional[0].kind)
	assert.Equal(t, "config-file", av.positional[0].info.name)

	require.Contains(t, av.options, "-b")
	require.Contains(t, av.options, "--bind-address")
	assert.Same(t, av.options["-b"], av.options["--bind-address"])
	assert.Equal(t, KindOptional, av.options["-b"].kind)
	assert.Equal(t, KindFlag, av.options["--verbose"].kind)

	require.NotNil(t, av.variadic)
	assert.Equal(t, "filenames", av.variadic.info.name)
	assert.Equal(t, collectList, av.variadic.collect)
}

func TestSetLikeVariadic(t *testing.T) {
	type schema struct {
		Filenames map[string]struct{}
	}

	av := mustNew[schema](t)

	require.NotNil(t, av.variadic)
	assert.Equal(t, collectSet, av.variadic.collect)
}

func TestNameAbbrevAndValueHelpDerivation(t *testing.T) {
	type schema struct {
		SupplementaryInfo *string
		BindAddress       *string `arg:"name=addr,abbrev=x" value:"address"`
	}

	av := mustNew[schema](t)

	info := av.options["--supplementary-info"].info
	assert.Equal(t, "supplementary-info", info.name)
	assert.Equal(t, "s", info.abbrev)
	assert.Equal(t, "supplementary-info", info.valueHelp)

	require.Contains(t, av.options, "-x")
	require.Contains(t, av.options, "--addr")
	assert.Equal(t, "address", av.options["--addr"].info.valueHelp)
	assert.NotContains(t, av.options, "--bind-address")
}

func TestExplicitKinds(t *testing.T) {
	type schema struct {
		Pos      string   `arg:"kind=positional"`
		Opt      *string  `arg:"kind=optional"`
		BoolOpt  *bool    `arg:"kind=optional"`
		Checksum []string `arg:"kind=optional"`
		Rest     []string `arg:"kind=variadic"`
	}

	av := mustNew[schema](t)

	require.Len(t, av.positional, 1)
	assert.Equal(t, KindOptional, av.options["--opt"].kind)
	// boolean optionals never take a value token, so they stay flags
	assert.Equal(t, KindFlag, av.options["--bool-opt"].kind)
	assert.True(t, av.options["--checksum"].repeat)
	require.NotNil(t, av.variadic)
	assert.Equal(t, "rest", av.variadic.info.name)
}

func TestAbbrevCollisionLastRegistrationWins(t *testing.T) {
	type schema struct {
		Level *string
		Limit *int
	}

	av := mustNew[schema](t)

	// abbrev collisions are not validated: -l silently rebinds to the
	// last registered field while both long forms stay intact
	assert.Equal(t, "limit", av.options["-l"].info.name)
	assert.Equal(t, "level", av.options["--level"].info.name)
	assert.Equal(t, "limit", av.options["--limit"].info.name)
}

func TestUnexportedAndEmbeddedFieldsIgnored(t *testing.T) {
	type embedded struct{ Inner string }
	type schema struct {
		embedded
		hidden string
		Id     string
	}

	av := mustNew[schema](t)

	require.Len(t, av.positional, 1)
	assert.Equal(t, "id", av.positional[0].info.name)
}

func TestSchemaErrors(t *testing.T) {
	assertSchemaErr := func(t *testing.T, err error, field string) {
		t.Helper()
		var se *SchemaError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, field, se.Field)
	}

	t.Run("not a struct", func(t *testing.T) {
		_, err := New[int]()
		var se *SchemaError
		require.ErrorAs(t, err, &se)
		assert.Empty(t, se.Field)
	})

	t.Run("positional after optional", func(t *testing.T) {
		type schema struct {
			Level *string
			Id    string
		}
		_, err := New[schema]()
		assertSchemaErr(t, err, "Id")
	})

	t.Run("variadic not last", func(t *testing.T) {
		type schema struct {
			Files []string
			Id    string
		}
		_, err := New[schema]()
		assertSchemaErr(t, err, "Files")
	})

	t.Run("no known conversion", func(t *testing.T) {
		type schema struct {
			Count int64
		}
		_, err := New[schema]()
		assertSchemaErr(t, err, "Count")
	})

	t.Run("unsupported collection", func(t *testing.T) {
		type schema struct {
			Pairs map[string]string
		}
		_, err := New[schema]()
		assertSchemaErr(t, err, "Pairs")
	})

	t.Run("enum on non-string", func(t *testing.T) {
		type schema struct {
			Count *int `arg:"enum=1|2"`
		}
		_, err := New[schema]()
		assertSchemaErr(t, err, "Count")
	})

	t.Run("kind does not match type", func(t *testing.T) {
		type flagOnString struct {
			Name *string `arg:"kind=flag"`
		}
		_, err := New[flagOnString]()
		assertSchemaErr(t, err, "Name")

		type positionalOnPointer struct {
			Name *string `arg:"kind=positional"`
		}
		_, err = New[positionalOnPointer]()
		assertSchemaErr(t, err, "Name")

		type optionalOnScalar struct {
			Name string `arg:"kind=optional"`
		}
		_, err = New[optionalOnScalar]()
		assertSchemaErr(t, err, "Name")
	})

	t.Run("malformed tag", func(t *testing.T) {
		type badEntry struct {
			Name string `arg:"nope"`
		}
		_, err := New[badEntry]()
		assertSchemaErr(t, err, "Name")

		type badAbbrev struct {
			Name *string `arg:"abbrev=no"`
		}
		_, err = New[badAbbrev]()
		assertSchemaErr(t, err, "Name")

		type badKind struct {
			Name string `arg:"kind=sideways"`
		}
		_, err = New[badKind]()
		assertSchemaErr(t, err, "Name")
	})
}

func TestKebab(t *testing.T) {
	assert.Equal(t, "bind-address", kebab("BindAddress"))
	assert.Equal(t, "config-file", kebab("config_file"))
	assert.Equal(t, "id", kebab("Id"))
}
