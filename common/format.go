package common

import (
	"github.com/ryanuber/columnize"
)

// FormatKV takes a set of strings and formats them into properly
// aligned k = v pairs using the columnize library.
func FormatKV(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	columnConf.Glue = " = "

	return columnize.Format(in, columnConf)
}
