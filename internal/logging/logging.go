package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	Core    *logrus.Entry
	Watch   *logrus.Entry
	Store   *logrus.Entry
	UI      *logrus.Entry
	Enabled bool

	base *logrus.Logger
)

func init() {
	base = logrus.New()
	base.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000000",
	})

	// Only enable logging if METAFOLDER_DEBUG environment variable is set
	if os.Getenv("METAFOLDER_DEBUG") == "" {
		base.SetOutput(io.Discard)
		base.SetLevel(logrus.PanicLevel)
		Enabled = false
	} else {
		Enabled = true
		base.SetLevel(logrus.DebugLevel)

		// Open debug.log once for all loggers
		debugFile, err := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			// Fallback to stderr if we can't open the file
			base.SetOutput(os.Stderr)
		} else {
			base.SetOutput(debugFile)
		}
	}

	Core = base.WithField("component", "core")
	Watch = base.WithField("component", "watch")
	Store = base.WithField("component", "store")
	UI = base.WithField("component", "ui")
}

// SetOutput redirects every category logger, enabling debug level.
// Tests use it to capture log lines.
func SetOutput(w io.Writer) {
	base.SetOutput(w)
	base.SetLevel(logrus.DebugLevel)
	Enabled = true
}
