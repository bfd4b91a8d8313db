package cli

import (
	"io"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/send"
	"github.com/pkg/errors"
)

// DefaultLogThreshold is the lowest priority logged by the command-line tools.
const DefaultLogThreshold = level.Info

// SetupLogger sends log messages at or above the threshold to w, so they never
// interleave with the menu or token output on stdout.
func SetupLogger(name string, w io.Writer, threshold level.Priority) error {
	if w == nil {
		return errors.New("must specify a log output")
	}

	ws, ok := w.(send.WriteStringer)
	if !ok {
		ws = stringWriter{Writer: w}
	}

	sender, err := send.NewStreamLogger(name, ws, send.LevelInfo{Default: level.Info, Threshold: threshold})
	if err != nil {
		return errors.Wrap(err, "creating log sender")
	}

	return errors.Wrap(grip.SetSender(sender), "setting log sender")
}

type stringWriter struct {
	io.Writer
}

func (w stringWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}
