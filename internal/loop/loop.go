package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/antoniostano/aria/internal/intent"
	"github.com/antoniostano/aria/internal/memory"
	"github.com/antoniostano/aria/internal/observability"
	"github.com/antoniostano/aria/internal/reminder"
	"github.com/antoniostano/aria/internal/respond"
	"github.com/antoniostano/aria/internal/session"
	"github.com/antoniostano/aria/internal/voice"
)

// State names the loop's position in the turn cycle.
type State string

const (
	StateIdle         State = "idle"
	StateListening    State = "listening"
	StateInterpreting State = "interpreting"
	StateActing       State = "acting"
	StateSpeaking     State = "speaking"
)

const summaryKey = "last_session_summary"

const (
	welcomeText          = "Hello! I'm Aria, your voice assistant. How can I help you today?"
	farewellText         = "It was great working with you today. I've saved a note for next time. Goodbye!"
	recognitionErrorText = "Sorry, I couldn't understand that. Please try again."
	remoteErrorText      = "I'm having trouble reaching my reasoning service right now. Let's try again in a moment."
)

// Config holds the loop's behavioral knobs.
type Config struct {
	SpeakEnabled     bool
	ReminderInterval time.Duration
}

// Loop runs the sequential listen, interpret, act, speak cycle. Everything
// here is single-threaded. The reminder check shares the same cadence so
// reminder log writes never overlap.
type Loop struct {
	recognizer  voice.Recognizer
	synthesizer voice.Synthesizer
	responder   *respond.Responder
	store       memory.Store
	reminders   *reminder.Log
	history     *session.History
	metrics     *observability.Metrics
	logger      *slog.Logger
	cfg         Config

	now       func() time.Time
	lastCheck time.Time
	echo      io.Writer

	turns atomic.Int64
	state atomic.Value
}

func New(
	recognizer voice.Recognizer,
	synthesizer voice.Synthesizer,
	responder *respond.Responder,
	store memory.Store,
	reminders *reminder.Log,
	history *session.History,
	metrics *observability.Metrics,
	logger *slog.Logger,
	cfg Config,
) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loop{
		recognizer:  recognizer,
		synthesizer: synthesizer,
		responder:   responder,
		store:       store,
		reminders:   reminders,
		history:     history,
		metrics:     metrics,
		logger:      logger,
		cfg:         cfg,
		now:         time.Now,
		echo:        os.Stdout,
	}
	l.state.Store(StateIdle)
	return l
}

// Snapshot reports loop progress for the read-only HTTP surface.
type Snapshot struct {
	State     State     `json:"state"`
	Turns     int64     `json:"turns"`
	StartedAt time.Time `json:"started_at"`
}

func (l *Loop) Snapshot() Snapshot {
	return Snapshot{
		State:     l.state.Load().(State),
		Turns:     l.turns.Load(),
		StartedAt: l.history.StartedAt(),
	}
}

// Run drives the conversation until the exit intent or context cancellation.
// Non-fatal errors are reported verbally at the turn boundary; one bad turn
// never ends the session.
func (l *Loop) Run(ctx context.Context) error {
	l.speak(ctx, welcomeText)

	for {
		l.setState(StateIdle)
		if err := ctx.Err(); err != nil {
			return err
		}

		l.announceDueReminders(ctx)

		l.setState(StateListening)
		text, err := l.recognizer.Listen(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			if errors.Is(err, io.EOF) {
				l.logger.Info("input closed, ending session")
				l.persistSummary(ctx)
				return nil
			}
			if errors.Is(err, voice.ErrNoSpeech) {
				continue
			}
			l.logger.Warn("recognition failed", "error", err)
			l.countError("recognition")
			l.speak(ctx, recognitionErrorText)
			continue
		}

		l.setState(StateInterpreting)
		it := intent.Interpret(text)
		l.logger.Info("turn interpreted", "intent", string(it.Kind), "text", text)

		if it.Kind == intent.KindExit {
			l.speak(ctx, farewellText)
			l.persistSummary(ctx)
			l.countTurn(it.Kind)
			return nil
		}

		l.setState(StateActing)
		reply, err := l.responder.Respond(ctx, l.history, it)
		if err != nil {
			l.reportFailure(ctx, err)
			continue
		}

		l.setState(StateSpeaking)
		l.speak(ctx, reply)

		l.history.AppendPair(text, reply)
		l.countTurn(it.Kind)
	}
}

func (l *Loop) announceDueReminders(ctx context.Context) {
	if l.cfg.ReminderInterval > 0 && l.now().Sub(l.lastCheck) < l.cfg.ReminderInterval {
		return
	}
	l.lastCheck = l.now()

	fired, err := l.reminders.CheckDue(l.now())
	if err != nil {
		l.logger.Warn("reminder check failed", "error", err)
		return
	}
	for _, r := range fired {
		l.speak(ctx, fmt.Sprintf("Reminder: %s.", r.Text))
		if l.metrics != nil {
			l.metrics.RemindersFired.Inc()
		}
	}
	if l.metrics != nil {
		l.metrics.PendingReminders.Set(float64(len(l.reminders.Pending())))
	}
}

func (l *Loop) reportFailure(ctx context.Context, err error) {
	var failure *respond.Failure
	if errors.As(err, &failure) {
		switch failure.Kind {
		case respond.FailureRemote:
			l.logger.Error("remote completion failed", "error", failure.Err)
			l.countError(string(respond.FailureRemote))
			l.speak(ctx, remoteErrorText)
			return
		case respond.FailureFilesystem:
			l.logger.Error("workspace action failed", "error", failure.Err)
			l.countError(string(respond.FailureFilesystem))
			l.speak(ctx, fmt.Sprintf("I couldn't finish that: %s.", failure.Err))
			return
		}
	}
	l.logger.Error("turn failed", "error", err)
	l.countError("internal")
	l.speak(ctx, recognitionErrorText)
}

func (l *Loop) persistSummary(ctx context.Context) {
	if err := l.store.Set(ctx, memory.CategoryFact, summaryKey, l.history.Summary()); err != nil {
		l.logger.Warn("session summary not persisted", "error", err)
	}
}

// speak delivers one reply. Disabling TTS mutes the synthesizer only; the
// reply still reaches the user as a printed line.
func (l *Loop) speak(ctx context.Context, text string) {
	if text == "" {
		return
	}
	l.logger.Info("assistant reply", "text", text)
	if !l.cfg.SpeakEnabled {
		fmt.Fprintf(l.echo, "aria> %s\n", text)
		return
	}
	if err := l.synthesizer.Speak(ctx, text); err != nil {
		l.logger.Warn("speech synthesis failed", "error", err)
	}
}

func (l *Loop) setState(s State) { l.state.Store(s) }

func (l *Loop) countTurn(kind intent.Kind) {
	l.turns.Add(1)
	if l.metrics != nil {
		l.metrics.Turns.WithLabelValues(string(kind)).Inc()
	}
}

func (l *Loop) countError(kind string) {
	if l.metrics != nil {
		l.metrics.TurnErrors.WithLabelValues(kind).Inc()
	}
}
