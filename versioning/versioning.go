package versioning

// Embedded by --ldflags on build time
var (
	Version   string
	Commit    string
	Branch    string
	BuildTime string
)
