package configuration

type InputConfig struct {
	ID     string             `json:"id"`
	File   *FileInputConfig   `json:"file,omitempty"`
	Cmd    *CmdInputConfig    `json:"cmd,omitempty"`
	Static *StaticInputConfig `json:"static,omitempty"`
}

type FileInputConfig struct {
	Path string `json:"path"`
}

type CmdInputConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}

type StaticInputConfig struct {
	Value float64 `json:"value"`
}
