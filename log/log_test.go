package log_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/snark-bn254-verifier/log"
)

func TestInitAcceptsKnownLevels(t *testing.T) {
	c := qt.New(t)
	for _, level := range []string{log.LogLevelDebug, log.LogLevelInfo, log.LogLevelWarn, log.LogLevelError} {
		log.Init(level, "stderr")
		c.Assert(log.Level(), qt.Equals, level)
	}
}

func TestInitPanicsOnUnknownLevel(t *testing.T) {
	c := qt.New(t)
	c.Assert(func() { log.Init("bogus", "stderr") }, qt.PanicMatches, `invalid log level: "bogus"`)
}
