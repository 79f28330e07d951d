package clirelayer

type CmdResult struct{}

func (r CmdResult) GetOutput() string {
	return ""
}
