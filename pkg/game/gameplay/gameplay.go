// Package gameplay maps control keys onto a generation session.
package gameplay

import (
	"errors"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	engineinput "wavecollapse/pkg/engine/input"
	"wavecollapse/pkg/engine/rng"
	"wavecollapse/pkg/engine/wfc"
	"wavecollapse/pkg/game/devtools"
	"wavecollapse/pkg/game/state"
)

// NewSeed supplies the seed used when a run is restarted
var NewSeed = rng.TimeSeed

// ProcessKey applies a control key to the session and reports whether the
// caller should quit.
func ProcessKey(s *state.Session, key engineinput.Key) (quit bool) {
	switch key {
	case engineinput.KeyNone:
		return false

	case engineinput.KeyQuit:
		return true

	case engineinput.KeyPause:
		s.TogglePause()
		return false

	case engineinput.KeyRestart:
		if err := s.Restart(NewSeed()); err != nil {
			logrus.WithError(err).Error("restart failed")
			return false
		}
		s.Start()
		s.AddMessage(gotext.Get("RESTARTED", s.Seed))
		return false

	case engineinput.KeyAddRow:
		if err := s.Scroll(); err != nil && !errors.Is(err, wfc.ErrIncomplete) {
			logrus.WithError(err).Error("scroll failed")
		}
		return false

	case engineinput.KeySolve:
		s.Solve()
		return false

	case engineinput.KeyScreenshot:
		filename, err := devtools.SaveScreenshotHTML(s.Frame())
		if err != nil {
			s.AddMessage(gotext.Get("SCREENSHOT_FAILED", err))
		} else {
			s.AddMessage(gotext.Get("SCREENSHOT_SAVED", filename))
		}
		return false

	case engineinput.KeyDump:
		path, err := devtools.DumpMatrixToFile(s.Frame(), "")
		if err != nil {
			s.AddMessage(gotext.Get("DUMP_FAILED", err))
		} else {
			s.AddMessage(gotext.Get("DUMP_SAVED", path))
		}
		return false
	}

	s.AddMessage(gotext.Get("UNKNOWN_COMMAND"))
	return false
}
