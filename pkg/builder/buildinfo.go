package builder

import (
	"fmt"
	"runtime"
)

// Overridden at link time via -ldflags -X.
var (
	Version   = "unknown"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

func BuildInfo() string {
	return fmt.Sprintf("flowpath %s (%s %s) %s", Version, Commit, Date, GoVersion)
}
