package generation

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInFlight is returned when an operation is refused because a
	// generation is currently in flight.
	ErrInFlight = errors.New("a generation is already in flight")
	// ErrNotInFlight is returned when completing or failing a generation
	// that is not the one in flight.
	ErrNotInFlight = errors.New("no matching generation in flight")
	// ErrEmptyText is returned when a generation is started with no text.
	ErrEmptyText = errors.New("empty text")
)

// Status describes where the current generation is in its lifecycle.
type Status string

const (
	// StatusIdle means no generation has been started or the slot was cleared.
	StatusIdle Status = "idle"
	// StatusRequesting means a generation is in flight.
	StatusRequesting Status = "requesting"
	// StatusReady means the last generation produced audio.
	StatusReady Status = "ready"
	// StatusFailed means the last generation failed.
	StatusFailed Status = "failed"
)

// Result holds a finished generation: the request parameters, what was
// actually spoken, and the assembled WAV audio.
type Result struct {
	ID            string
	Text          string
	SpokenText    string
	Voice         string
	Language      string
	Translated    bool
	WAV           []byte
	MIMEType      string
	SampleRate    int
	Channels      int
	BitsPerSample int
	Duration      time.Duration
	CreatedAt     time.Time
}

// Snapshot is a point-in-time view of the tracker. The Result pointer is
// shared with the tracker and must not be modified.
type Snapshot struct {
	Status Status
	ID     string
	Result *Result
	Err    string
}

// Tracker holds the single generation slot. The slot is fully
// overwritten at each transition: starting a new generation discards any
// prior result or error.
type Tracker struct {
	mu     sync.Mutex
	status Status
	id     string
	result *Result
	errMsg string
	logger *slog.Logger
}

// NewTracker creates an idle tracker.
func NewTracker(logger *slog.Logger) *Tracker {
	return &Tracker{
		status: StatusIdle,
		logger: logger,
	}
}

// Begin starts a new generation and returns its ID. It is refused while
// another generation is in flight and when text is empty after trimming.
func (t *Tracker) Begin(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status == StatusRequesting {
		return "", ErrInFlight
	}

	t.status = StatusRequesting
	t.id = uuid.New().String()
	t.result = nil
	t.errMsg = ""

	t.logger.Debug("generation started",
		"generation_id", t.id,
		"text_length", len(text),
	)

	return t.id, nil
}

// Complete transitions the in-flight generation to ready. The result's
// ID must match the in-flight generation.
func (t *Tracker) Complete(res *Result) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusRequesting || res.ID != t.id {
		return ErrNotInFlight
	}

	t.status = StatusReady
	t.result = res
	t.errMsg = ""

	t.logger.Debug("generation ready",
		"generation_id", t.id,
		"wav_bytes", len(res.WAV),
	)

	return nil
}

// Fail transitions the in-flight generation to failed with a message.
func (t *Tracker) Fail(id, msg string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status != StatusRequesting || id != t.id {
		return ErrNotInFlight
	}

	t.status = StatusFailed
	t.result = nil
	t.errMsg = msg

	t.logger.Debug("generation failed",
		"generation_id", t.id,
		"error", msg,
	)

	return nil
}

// Clear returns the tracker to idle, discarding any result or error. It
// is refused while a generation is in flight.
func (t *Tracker) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status == StatusRequesting {
		return ErrInFlight
	}

	t.status = StatusIdle
	t.id = ""
	t.result = nil
	t.errMsg = ""

	return nil
}

// Current returns a snapshot of the tracker.
func (t *Tracker) Current() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Snapshot{
		Status: t.status,
		ID:     t.id,
		Result: t.result,
		Err:    t.errMsg,
	}
}
