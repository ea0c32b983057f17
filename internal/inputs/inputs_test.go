package inputs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wavefan/wavefan/internal/configuration"
)

func TestNewInputStatic(t *testing.T) {
	// GIVEN
	config := configuration.InputConfig{
		ID:     "cooling_request",
		Static: &configuration.StaticInputConfig{Value: 40},
	}

	// WHEN
	input, err := NewInput(config)

	// THEN
	assert.NoError(t, err)

	value, err := input.GetValue()
	assert.NoError(t, err)
	assert.Equal(t, 40.0, value)
}

func TestNewInputWithoutTypeFails(t *testing.T) {
	// GIVEN
	config := configuration.InputConfig{ID: "empty"}

	// WHEN
	_, err := NewInput(config)

	// THEN
	assert.Error(t, err)
}

func TestInputOverrideTakesPrecedence(t *testing.T) {
	// GIVEN
	input := &StaticInput{
		Config: configuration.InputConfig{
			ID:     "cooling_request",
			Static: &configuration.StaticInputConfig{Value: 40},
		},
		Value: 40,
	}

	// WHEN
	override := 80.0
	input.SetOverride(&override)

	// THEN
	value, err := input.GetValue()
	assert.NoError(t, err)
	assert.Equal(t, 80.0, value)

	// WHEN
	input.SetOverride(nil)

	// THEN
	value, err = input.GetValue()
	assert.NoError(t, err)
	assert.Equal(t, 40.0, value)
}

func TestFileInput(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "value")
	assert.NoError(t, os.WriteFile(path, []byte("42.5\n"), 0644))

	input := &FileInput{
		Config: configuration.InputConfig{
			ID:   "file_input",
			File: &configuration.FileInputConfig{Path: path},
		},
	}

	// WHEN
	value, err := input.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 42.5, value)
}

func TestFileInputUnreadableFileReportsZero(t *testing.T) {
	// GIVEN
	input := &FileInput{
		Config: configuration.InputConfig{
			ID:   "file_input",
			File: &configuration.FileInputConfig{Path: "/does/not/exist"},
		},
	}

	// WHEN
	value, err := input.GetValue()

	// THEN
	// a transiently unreadable source must not take down the control loop
	assert.NoError(t, err)
	assert.Equal(t, 0.0, value)
}

func TestCmdInput(t *testing.T) {
	// GIVEN
	input := &CmdInput{
		Config: configuration.InputConfig{
			ID: "cmd_input",
			Cmd: &configuration.CmdInputConfig{
				Exec: "echo",
				Args: []string{"42"},
			},
		},
	}

	// WHEN
	value, err := input.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 42.0, value)
}
