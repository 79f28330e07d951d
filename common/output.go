package common

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type ICommandResult interface {
	GetOutput() string
}

type OutputFormatter interface {
	SetError(err error)
	SetCommandResult(result ICommandResult)
	WriteOutput()
}

func InitializeOutputter(cmd *cobra.Command) OutputFormatter {
	return &textOutputFormatter{
		writer:    cmd.OutOrStdout(),
		errWriter: cmd.ErrOrStderr(),
	}
}

type textOutputFormatter struct {
	writer    io.Writer
	errWriter io.Writer

	result ICommandResult
	err    error
}

var _ OutputFormatter = (*textOutputFormatter)(nil)

func (t *textOutputFormatter) SetError(err error) {
	t.err = err
}

func (t *textOutputFormatter) SetCommandResult(result ICommandResult) {
	t.result = result
}

func (t *textOutputFormatter) WriteOutput() {
	if t.err != nil {
		if t.errWriter == nil {
			t.errWriter = os.Stderr
		}

		_, _ = fmt.Fprintln(t.errWriter, t.err.Error())

		return
	}

	if t.result != nil {
		if t.writer == nil {
			t.writer = os.Stdout
		}

		_, _ = fmt.Fprintln(t.writer, t.result.GetOutput())
	}
}
