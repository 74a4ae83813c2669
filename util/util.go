package wireutil

import (
	"fmt"
	"os"
	"path"
	"runtime"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func SetupLogging() {
	log.SetLevel(log.InfoLevel)
	log.SetOutput(os.Stdout)
	log.SetReportCaller(true)
	log.SetFormatter(&log.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			// Grab filename and line of current frame and add it to log entry
			_, filename := path.Split(f.File)
			return "", fmt.Sprintf("%20v:%-5d", filename, f.Line)
		},
	})
}

// Sets the logging level from its name, e.g. "debug" or "warn".
func SetLogLevel(level string) error {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %s", level)
	}
	log.SetLevel(parsed)
	return nil
}
