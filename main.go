package main

import (
	"github.com/wavefan/wavefan/cmd"
)

func main() {
	cmd.Execute()
}
