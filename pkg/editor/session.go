// Package editor wires the image store and the history engine into an
// editing session. It is the only place where the two meet: every applied
// edit is Set on the store and pushed to history exactly once.
package editor

import (
	"errors"
	"fmt"
	"io"

	"github.com/docker/go-units"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Fepozopo/snapedit/pkg/history"
	"github.com/Fepozopo/snapedit/pkg/stdimg"
	"github.com/Fepozopo/snapedit/pkg/store"
)

var (
	// ErrNothingToUndo is returned by Undo when the current state is the oldest one kept.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo is returned by Redo when no undone state is pending.
	ErrNothingToRedo = errors.New("nothing to redo")
	// ErrNoSourcePath is returned by Save when the document has never been
	// loaded from or saved to a file.
	ErrNoSourcePath = errors.New("no file path for this image; use save as")
)

// Session is one editing session over a single document.
type Session struct {
	id       string
	store    *store.Store
	history  *history.History
	original stdimg.Buffer
	log      logrus.FieldLogger
}

// NewSession builds a session around an explicitly owned store and history.
// A nil logger discards output.
func NewSession(st *store.Store, h *history.History, log logrus.FieldLogger) *Session {
	id := uuid.NewString()
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Session{
		id:      id,
		store:   st,
		history: h,
		log:     log.WithField("session", id),
	}
}

// ID identifies the session in log output.
func (s *Session) ID() string { return s.id }

// Store exposes the session's image store for read-only queries.
func (s *Session) Store() *store.Store { return s.store }

// History exposes the session's history for read-only queries.
func (s *Session) History() *history.History { return s.history }

// Current returns a copy of the image on screen.
func (s *Session) Current() (stdimg.Buffer, bool) { return s.store.Get() }

// Open loads path as a new document: history restarts with the loaded image
// as its only entry. A failed load changes nothing.
func (s *Session) Open(path string) error {
	img, err := s.store.Load(path)
	if err != nil {
		s.log.WithError(err).WithField("path", path).Warn("open failed")
		return err
	}
	s.history.Reset()
	s.history.Push(img)
	s.original = img
	s.log.WithFields(logrus.Fields{
		"path":   path,
		"format": s.store.Format(),
		"width":  img.Width,
		"height": img.Height,
	}).Info("image opened")
	return nil
}

// Apply runs op against the current image, makes the result current and
// records it in history. On error nothing changes.
func (s *Session) Apply(op Operation) error {
	if op.apply == nil {
		return fmt.Errorf("%w: empty operation", store.ErrInvalidArgument)
	}
	img, err := op.apply(s.store)
	if err != nil {
		s.log.WithError(err).WithField("op", op.Name).Warn("edit rejected")
		return fmt.Errorf("%s: %w", op.Name, err)
	}
	s.store.Set(img)
	s.history.Push(img)
	undo, redo := s.history.Size()
	s.log.WithFields(logrus.Fields{
		"op":     op.Name,
		"width":  img.Width,
		"height": img.Height,
		"undo":   undo,
		"redo":   redo,
	}).Debug("edit applied")
	return nil
}

// Undo restores the previous state.
func (s *Session) Undo() error {
	img, ok := s.history.Undo()
	if !ok {
		return ErrNothingToUndo
	}
	s.store.Set(img)
	s.log.Debug("undo")
	return nil
}

// Redo replays the most recently undone state.
func (s *Session) Redo() error {
	img, ok := s.history.Redo()
	if !ok {
		return ErrNothingToRedo
	}
	s.store.Set(img)
	s.log.Debug("redo")
	return nil
}

// ResetToOriginal restores the image as it was opened and restarts history.
func (s *Session) ResetToOriginal() error {
	if s.original.Empty() {
		return store.ErrNoImageLoaded
	}
	s.store.Set(s.original)
	s.history.Reset()
	s.history.Push(s.original)
	s.log.Info("reset to original")
	return nil
}

// Save writes the current image back to its document path.
func (s *Session) Save() error {
	if !s.store.HasImage() {
		return store.ErrNoImageLoaded
	}
	path := s.store.Path()
	if path == "" {
		return ErrNoSourcePath
	}
	return s.SaveAs(path)
}

// SaveAs writes the current image to path and makes it the document path.
func (s *Session) SaveAs(path string) error {
	if err := s.store.Save(path); err != nil {
		s.log.WithError(err).WithField("path", path).Warn("save failed")
		return err
	}
	s.log.WithField("path", path).Info("image saved")
	return nil
}

// Status is a snapshot of what a status bar would show.
type Status struct {
	Loaded       bool
	Path         string
	Width        int
	Height       int
	Undo         int
	Redo         int
	MaxDepth     int
	HistoryBytes int
}

// Status reports the current document state.
func (s *Session) Status() Status {
	st := Status{Path: s.store.Path(), MaxDepth: s.history.MaxDepth(), HistoryBytes: s.history.Bytes()}
	st.Undo, st.Redo = s.history.Size()
	if w, h, err := s.store.Dimensions(); err == nil {
		st.Loaded = true
		st.Width, st.Height = w, h
	}
	return st
}

func (st Status) String() string {
	if !st.Loaded {
		return "No image loaded"
	}
	return fmt.Sprintf("%s | %dx%d | history %d/%d, redo %d (%s)",
		st.Path, st.Width, st.Height, st.Undo, st.MaxDepth, st.Redo, units.HumanSize(float64(st.HistoryBytes)))
}
