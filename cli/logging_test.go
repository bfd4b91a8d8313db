package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writerOnly hides the WriteString method of the underlying writer.
type writerOnly struct {
	buf *bytes.Buffer
}

func (w writerOnly) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func TestSetupLogger(t *testing.T) {
	t.Cleanup(func() {
		assert.NoError(t, SetupLogger("cli", os.Stderr, DefaultLogThreshold))
	})

	t.Run("LogsAtOrAboveThreshold", func(t *testing.T) {
		var logs bytes.Buffer
		require.NoError(t, SetupLogger("cli", &logs, DefaultLogThreshold))

		grip.Debug(message.Fields{"message": "below threshold"})
		grip.Info(message.Fields{"message": "at threshold"})
		grip.Error(message.Fields{"message": "above threshold"})

		assert.NotContains(t, logs.String(), "below threshold")
		assert.Contains(t, logs.String(), "at threshold")
		assert.Contains(t, logs.String(), "above threshold")
	})
	t.Run("LogsToPlainWriter", func(t *testing.T) {
		var logs bytes.Buffer
		require.NoError(t, SetupLogger("cli", writerOnly{buf: &logs}, level.Debug))

		grip.Debug(message.Fields{"message": "debug message"})

		assert.Contains(t, logs.String(), "debug message")
	})
	t.Run("FailsWithoutOutput", func(t *testing.T) {
		assert.Error(t, SetupLogger("cli", nil, DefaultLogThreshold))
	})
}
