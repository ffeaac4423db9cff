package app

import (
	"context"
	"sync"
	"time"

	"codequiz-service/internal/domain"
	"go.uber.org/zap"
)

// Routes the presentation layer navigates to once an attempt completes.
const (
	RouteCertificate = "/certificate"
	RouteResults     = "/results"
)

// AttemptOptions tunes the per-question budget and completion hand-off.
type AttemptOptions struct {
	QuestionSeconds int
	TickInterval    time.Duration
	RedirectDelay   time.Duration
	Threshold       int
	SaveTimeout     time.Duration
}

// DefaultAttemptOptions mirrors the site: 30s per question, 1s ticks, 3s before redirect, 90% gate.
func DefaultAttemptOptions() AttemptOptions {
	return AttemptOptions{
		QuestionSeconds: 30,
		TickInterval:    time.Second,
		RedirectDelay:   3 * time.Second,
		Threshold:       domain.CertificateThreshold,
		SaveTimeout:     5 * time.Second,
	}
}

func (o AttemptOptions) withDefaults() AttemptOptions {
	d := DefaultAttemptOptions()
	if o.QuestionSeconds <= 0 {
		o.QuestionSeconds = d.QuestionSeconds
	}
	if o.TickInterval <= 0 {
		o.TickInterval = d.TickInterval
	}
	if o.RedirectDelay < 0 {
		o.RedirectDelay = 0
	}
	if o.Threshold <= 0 {
		o.Threshold = d.Threshold
	}
	if o.SaveTimeout <= 0 {
		o.SaveTimeout = d.SaveTimeout
	}
	return o
}

// State names the two attempt states.
type State string

const (
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// QuestionView is a question as shown while the attempt runs; the answer stays hidden.
type QuestionView struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// Completion is attached to snapshots once the attempt has finished.
type Completion struct {
	Payload       domain.ResultsPayload `json:"payload"`
	Eligible      bool                  `json:"eligible"`
	Route         string                `json:"route"`
	RedirectAfter time.Duration         `json:"-"`
	RedirectMS    int64                 `json:"redirectAfterMs"`
	SaveError     string                `json:"saveError,omitempty"`
}

// Snapshot is a point-in-time view of an attempt.
type Snapshot struct {
	AttemptID  string        `json:"attemptId"`
	Category   string        `json:"category"`
	State      State         `json:"state"`
	Index      int           `json:"index"`
	Total      int           `json:"total"`
	TimeLeft   int           `json:"timeLeft"`
	Question   *QuestionView `json:"question,omitempty"`
	Selected   *int          `json:"selected,omitempty"`
	Answered   int           `json:"answered"`
	Completion *Completion   `json:"completion,omitempty"`
}

// Attempt drives one linear pass through a quiz. It owns the attempt state; the
// countdown goroutine and callers both reach it through the mutex.
type Attempt struct {
	id        string
	slot      string
	quiz      domain.Quiz
	results   ResultsRepository
	countdown Countdown
	opts      AttemptOptions
	log       *zap.Logger
	now       func() time.Time

	mu          sync.Mutex
	index       int
	answers     map[int]int
	timeLeft    int
	completed   bool
	closed      bool
	generation  uint64
	stop        CancelFunc
	completion  *Completion
	subscribers map[chan Snapshot]struct{}
	done        chan struct{}
}

func newAttempt(id, slot string, quiz domain.Quiz, results ResultsRepository, countdown Countdown, opts AttemptOptions, log *zap.Logger, now func() time.Time) *Attempt {
	opts = opts.withDefaults()
	return &Attempt{
		id:          id,
		slot:        slot,
		quiz:        quiz,
		results:     results,
		countdown:   countdown,
		opts:        opts,
		log:         log.With(zap.String("attempt_id", id), zap.String("category", quiz.Category)),
		now:         now,
		answers:     make(map[int]int),
		timeLeft:    opts.QuestionSeconds,
		subscribers: make(map[chan Snapshot]struct{}),
		done:        make(chan struct{}),
	}
}

// ID returns the attempt identifier.
func (a *Attempt) ID() string { return a.id }

// Done is closed once the results payload has been handed off.
func (a *Attempt) Done() <-chan struct{} { return a.done }

func (a *Attempt) start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.restartLocked()
}

// SelectAnswer records option for the current question. Last write wins; the
// index and the countdown are left alone.
func (a *Attempt) SelectAnswer(option int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.mutableLocked(); err != nil {
		return err
	}
	if option < 0 || option >= len(a.quiz.Questions[a.index].Options) {
		return domain.ErrInvalidOption
	}
	a.answers[a.index] = option
	a.broadcastLocked()
	return nil
}

// Advance moves to the next question or completes the attempt on the last one.
func (a *Attempt) Advance() error {
	a.mu.Lock()
	if err := a.mutableLocked(); err != nil {
		a.mu.Unlock()
		return err
	}
	payload, finished := a.advanceLocked()
	a.mu.Unlock()

	if finished {
		a.finish(payload)
	}
	return nil
}

// Retreat moves back one question and resets the countdown. Answers are kept.
func (a *Attempt) Retreat() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.mutableLocked(); err != nil {
		return err
	}
	if a.index == 0 {
		return domain.ErrNoPreviousQuestion
	}
	a.index--
	a.restartLocked()
	a.broadcastLocked()
	return nil
}

// Close tears the attempt down: the countdown is cancelled and subscribers are released.
func (a *Attempt) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	a.cancelLocked()
	for ch := range a.subscribers {
		delete(a.subscribers, ch)
		close(ch)
	}
}

// Snapshot returns the current view of the attempt.
func (a *Attempt) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// Subscribe returns a channel of snapshots, starting with the current one.
// The caller must invoke the returned cancel function to avoid leaks.
func (a *Attempt) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	a.subscribers[ch] = struct{}{}
	ch <- a.snapshotLocked()
	a.mu.Unlock()

	cancel := func() {
		a.mu.Lock()
		if _, ok := a.subscribers[ch]; ok {
			delete(a.subscribers, ch)
			close(ch)
		}
		a.mu.Unlock()
	}
	return ch, cancel
}

func (a *Attempt) mutableLocked() error {
	if a.closed {
		return domain.ErrAttemptClosed
	}
	if a.completed {
		return domain.ErrAttemptCompleted
	}
	return nil
}

func (a *Attempt) tick(generation uint64) {
	a.mu.Lock()
	if a.completed || a.closed || generation != a.generation {
		a.mu.Unlock()
		return
	}
	a.timeLeft--
	if a.timeLeft > 0 {
		a.broadcastLocked()
		a.mu.Unlock()
		return
	}
	a.log.Debug("question timed out", zap.Int("index", a.index))
	payload, finished := a.advanceLocked()
	a.mu.Unlock()

	if finished {
		a.finish(payload)
	}
}

func (a *Attempt) advanceLocked() (domain.ResultsPayload, bool) {
	if a.index < len(a.quiz.Questions)-1 {
		a.index++
		a.restartLocked()
		a.broadcastLocked()
		return domain.ResultsPayload{}, false
	}

	a.completed = true
	a.cancelLocked()
	a.timeLeft = 0

	score := domain.Score(a.quiz.Questions, a.answers)
	total := len(a.quiz.Questions)
	answers := make(map[int]int, len(a.answers))
	for k, v := range a.answers {
		answers[k] = v
	}
	return domain.ResultsPayload{
		AttemptID:   a.id,
		Category:    a.quiz.Category,
		Score:       score,
		Total:       total,
		Percentage:  domain.Percentage(score, total),
		Answers:     answers,
		Questions:   a.quiz.Clone().Questions,
		CompletedAt: a.now().UTC(),
	}, true
}

// finish stores the payload, then publishes the completion snapshot.
func (a *Attempt) finish(payload domain.ResultsPayload) {
	ctx, cancel := context.WithTimeout(context.Background(), a.opts.SaveTimeout)
	err := a.results.Save(ctx, a.slot, payload)
	cancel()

	eligible := domain.Eligible(payload.Percentage, a.opts.Threshold)
	completion := &Completion{
		Payload:       payload,
		Eligible:      eligible,
		Route:         RouteResults,
		RedirectAfter: a.opts.RedirectDelay,
		RedirectMS:    a.opts.RedirectDelay.Milliseconds(),
	}
	if eligible {
		completion.Route = RouteCertificate
	}
	if err != nil {
		a.log.Error("failed to save quiz results", zap.String("slot", a.slot), zap.Error(err))
		completion.SaveError = err.Error()
	} else {
		a.log.Info("quiz completed",
			zap.Int("score", payload.Score),
			zap.Int("total", payload.Total),
			zap.Int("percentage", payload.Percentage),
			zap.String("route", completion.Route))
	}

	a.mu.Lock()
	a.completion = completion
	a.broadcastLocked()
	a.mu.Unlock()
	close(a.done)
}

// restartLocked resets the budget and replaces the countdown. Ticks carrying an
// older generation are dropped, so a cancelled countdown can never advance.
func (a *Attempt) restartLocked() {
	a.cancelLocked()
	a.timeLeft = a.opts.QuestionSeconds
	generation := a.generation
	a.stop = a.countdown.Start(a.opts.TickInterval, func() { a.tick(generation) })
}

func (a *Attempt) cancelLocked() {
	a.generation++
	if a.stop != nil {
		a.stop()
		a.stop = nil
	}
}

func (a *Attempt) broadcastLocked() {
	snap := a.snapshotLocked()
	for ch := range a.subscribers {
		select {
		case ch <- snap:
		default:
			// drop the oldest pending snapshot so a slow reader never blocks the engine
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (a *Attempt) snapshotLocked() Snapshot {
	snap := Snapshot{
		AttemptID:  a.id,
		Category:   a.quiz.Category,
		State:      StateInProgress,
		Index:      a.index,
		Total:      len(a.quiz.Questions),
		TimeLeft:   a.timeLeft,
		Answered:   len(a.answers),
		Completion: a.completion,
	}
	if a.completed {
		snap.State = StateCompleted
		return snap
	}
	question := a.quiz.Questions[a.index]
	snap.Question = &QuestionView{
		Prompt:  question.Prompt,
		Options: append([]string(nil), question.Options...),
	}
	if option, ok := a.answers[a.index]; ok {
		selected := option
		snap.Selected = &selected
	}
	return snap
}
