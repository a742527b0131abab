package marsmission

import (
	"os"

	"github.com/go-kit/log"
)

// NewLogger returns a logfmt logger tagged with the given component
// name, following the teacher's per-object (never global) logger
// convention.
func NewLogger(component string) log.Logger {
	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stdout))
	return log.With(l, "component", component, "ts", log.DefaultTimestampUTC)
}
