package inputs

import (
	"os/user"
	"path/filepath"
	"strings"

	"github.com/wavefan/wavefan/internal/configuration"
	"github.com/wavefan/wavefan/internal/ui"
	"github.com/wavefan/wavefan/internal/util"
)

type FileInput struct {
	Config    configuration.InputConfig `json:"config"`
	MovingAvg float64                   `json:"movingAvg"`
	Override  *float64                  `json:"override,omitempty"`
}

func (input *FileInput) GetId() string {
	return input.Config.ID
}

func (input *FileInput) GetConfig() configuration.InputConfig {
	return input.Config
}

func (input *FileInput) GetValue() (float64, error) {
	if input.Override != nil {
		return *input.Override, nil
	}

	filePath := input.Config.File.Path
	// resolve home dir path
	if strings.HasPrefix(filePath, "~") {
		currentUser, err := user.Current()
		if err != nil {
			return 0, err
		}

		filePath = filepath.Join(currentUser.HomeDir, filePath[1:])
	}

	value, err := util.ReadFloatFromFile(filePath)
	if err != nil {
		ui.Warning("Unable to read value from file input: %s", filePath)
		return 0, nil
	}

	return value, nil
}

func (input *FileInput) GetMovingAvg() (avg float64) {
	return input.MovingAvg
}

func (input *FileInput) SetMovingAvg(avg float64) {
	input.MovingAvg = avg
}

func (input *FileInput) SetOverride(value *float64) {
	input.Override = value
}
