// Package state holds the stepping session a frontend drives: the model being
// generated, its last rendered matrix and the bookkeeping shown to the user.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"wavecollapse/pkg/engine/wfc"
)

// MaxMessages is how many messages the session log keeps
const MaxMessages = 5

// Session represents one generation run and the controls applied to it
type Session struct {
	Model  *wfc.Model
	Matrix wfc.Matrix

	RunID uuid.UUID
	Seed  int64

	Paused     bool
	StartedAt  time.Time
	FinishedAt time.Time
	LastStep   time.Duration

	Messages []string

	catalog       wfc.Catalog
	width, height int
	now           func() time.Time
}

// Frame is a read-only snapshot handed to renderers
type Frame struct {
	RunID      uuid.UUID
	Seed       int64
	Width      int
	Height     int
	Matrix     wfc.Matrix
	Entropy    [][]int
	MaxEntropy int
	Percent    float64
	Complete   bool
	Paused     bool
	Elapsed    time.Duration
	LastStep   time.Duration
	Messages   []string
}

// NewSession creates a session for a width x height grid seeded with seed
func NewSession(catalog wfc.Catalog, width, height int, seed int64) (*Session, error) {
	s := &Session{
		catalog:  catalog,
		width:    width,
		height:   height,
		now:      time.Now,
		Messages: make([]string, 0),
	}
	if err := s.Restart(seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) log() *logrus.Entry {
	return logrus.WithFields(logrus.Fields{"run": s.RunID.String(), "seed": s.Seed})
}

// Restart discards the current model and message log and starts over with a
// new seed
func (s *Session) Restart(seed int64) error {
	m, err := wfc.New(s.catalog, s.width, s.height, wfc.WithSeed(seed))
	if err != nil {
		return err
	}
	s.Model = m
	s.Matrix = nil
	s.Seed = seed
	s.RunID = uuid.New()
	s.StartedAt = s.now()
	s.FinishedAt = time.Time{}
	s.LastStep = 0
	s.ClearMessages()

	s.log().WithFields(logrus.Fields{
		"width":  s.width,
		"height": s.height,
	}).Info("generation started")
	return nil
}

// Start seeds generation with one random collapse. It does nothing once started.
func (s *Session) Start() {
	if s.Matrix != nil {
		return
	}
	s.Matrix = s.Model.Solve()
	s.checkFinished()
}

// Step runs one iteration unless paused or complete, and reports whether any
// work was done.
func (s *Session) Step() bool {
	s.Start()
	if s.Paused || s.Model.IsComplete() {
		return false
	}
	began := s.now()
	mx, ok := s.Model.Iterate()
	s.LastStep = s.now().Sub(began)
	if ok {
		s.Matrix = mx
	}
	s.checkFinished()
	return ok
}

// Run iterates until the grid is complete or ctx is done
func (s *Session) Run(ctx context.Context) error {
	s.Start()
	err := s.Model.Run(ctx)
	s.Matrix = s.Model.RenderMatrix()
	s.checkFinished()
	return err
}

// Solve forces one more random collapse regardless of entropy
func (s *Session) Solve() {
	s.Matrix = s.Model.Solve()
	s.checkFinished()
}

func (s *Session) checkFinished() {
	if !s.Model.IsComplete() || !s.FinishedAt.IsZero() {
		return
	}
	s.FinishedAt = s.now()
	s.log().WithFields(logrus.Fields{
		"elapsed":        s.Elapsed().String(),
		"contradictions": s.Model.Contradictions(),
	}).Info("generation complete")
	s.AddMessage(gotext.Get("GENERATION_COMPLETE", s.Elapsed().Round(time.Millisecond)))
}

// Scroll drops the bottom row and adds an empty one on top. It is only
// allowed once the grid is complete.
func (s *Session) Scroll() error {
	if err := s.Model.PrependEmptyRow(); err != nil {
		if errors.Is(err, wfc.ErrIncomplete) {
			s.AddMessage(gotext.Get("SCROLL_REJECTED"))
		}
		return err
	}
	s.Matrix = s.Model.RenderMatrix()
	s.StartedAt = s.now()
	s.FinishedAt = time.Time{}
	s.checkFinished()
	s.AddMessage(gotext.Get("ROW_ADDED"))
	s.log().Debug("row added")
	return nil
}

// TogglePause pauses or resumes stepping
func (s *Session) TogglePause() {
	s.Paused = !s.Paused
}

// Elapsed returns the generation time so far, frozen once complete
func (s *Session) Elapsed() time.Duration {
	if !s.FinishedAt.IsZero() {
		return s.FinishedAt.Sub(s.StartedAt)
	}
	return s.now().Sub(s.StartedAt)
}

// AddMessage adds a message to the session's message log
func (s *Session) AddMessage(msg string) {
	s.Messages = append(s.Messages, msg)

	// Keep only the last MaxMessages
	if len(s.Messages) > MaxMessages {
		s.Messages = s.Messages[len(s.Messages)-MaxMessages:]
	}
}

// ClearMessages clears all messages
func (s *Session) ClearMessages() {
	s.Messages = make([]string, 0)
}

// Frame snapshots the session for rendering
func (s *Session) Frame() Frame {
	mx := s.Matrix
	if mx == nil {
		mx = s.Model.RenderMatrix()
	}
	msgs := make([]string, len(s.Messages))
	copy(msgs, s.Messages)
	return Frame{
		RunID:      s.RunID,
		Seed:       s.Seed,
		Width:      s.Model.Width(),
		Height:     s.Model.Height(),
		Matrix:     mx,
		Entropy:    s.Model.EntropyMatrix(),
		MaxEntropy: s.Model.MaxEntropy(),
		Percent:    s.Model.PercentComplete(),
		Complete:   s.Model.IsComplete(),
		Paused:     s.Paused,
		Elapsed:    s.Elapsed(),
		LastStep:   s.LastStep,
		Messages:   msgs,
	}
}
