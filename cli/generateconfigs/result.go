package cligenerateconfigs

import (
	"bytes"
	"fmt"

	"github.com/Vikakfuse/star-craft/common"
)

type CmdResult struct {
	configPath string
}

func (r CmdResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString(common.FormatKV(
		[]string{
			fmt.Sprintf("Relayer config|%s", r.configPath),
		}))

	return buffer.String()
}
