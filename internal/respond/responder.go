package respond

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/antoniostano/aria/internal/brain"
	"github.com/antoniostano/aria/internal/intent"
	"github.com/antoniostano/aria/internal/memory"
	"github.com/antoniostano/aria/internal/observability"
	"github.com/antoniostano/aria/internal/reminder"
	"github.com/antoniostano/aria/internal/session"
	"github.com/antoniostano/aria/internal/workspace"
)

// FailureKind labels a turn failure for the loop's spoken report and metrics.
type FailureKind string

const (
	FailureRemote     FailureKind = "remote_api"
	FailureFilesystem FailureKind = "filesystem"
)

// Failure tags an error with its taxonomy kind.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string { return fmt.Sprintf("%s: %v", f.Kind, f.Err) }
func (f *Failure) Unwrap() error { return f.Err }

const (
	memoryContextLimit = 8
	defaultContext     = 10
)

// Responder turns an interpreted intent into spoken text. Structured intents
// act on the local workspace; generic chat goes to the brain.
type Responder struct {
	adapter      brain.Adapter
	store        memory.Store
	ws           *workspace.Workspace
	reminders    *reminder.Log
	profile      PersonaProfile
	contextTurns int
	metrics      *observability.Metrics
	logger       *slog.Logger
}

func New(
	adapter brain.Adapter,
	store memory.Store,
	ws *workspace.Workspace,
	reminders *reminder.Log,
	personaID string,
	contextTurns int,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Responder {
	if contextTurns <= 0 {
		contextTurns = defaultContext
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Responder{
		adapter:      adapter,
		store:        store,
		ws:           ws,
		reminders:    reminders,
		profile:      ProfileFor(personaID),
		contextTurns: contextTurns,
		metrics:      metrics,
		logger:       logger,
	}
}

func (r *Responder) Profile() PersonaProfile { return r.profile }

// Respond handles every intent except Exit, which the loop owns.
func (r *Responder) Respond(ctx context.Context, hist *session.History, it intent.Intent) (string, error) {
	switch it.Kind {
	case intent.KindCreateProject:
		return r.action(r.ws.CreateProject(it.ProjectName, it.ProjectKind))
	case intent.KindCreateFile:
		return r.action(r.createFile(ctx, it))
	case intent.KindOrganizeFiles:
		return r.action(r.ws.OrganizeFiles(it.Path))
	case intent.KindAnalyzeDirectory:
		return r.action(r.ws.AnalyzeDirectory(it.Path))
	case intent.KindSetReminder:
		return r.action(r.setReminder(it))
	case intent.KindShowDashboard:
		return r.dashboard(ctx, hist)
	case intent.KindGenericChat:
		return r.chat(ctx, hist, it.Text)
	default:
		return "", fmt.Errorf("responder cannot handle intent %q", it.Kind)
	}
}

func (r *Responder) action(msg string, err error) (string, error) {
	if err != nil {
		return "", &Failure{Kind: FailureFilesystem, Err: err}
	}
	return msg, nil
}

func (r *Responder) createFile(ctx context.Context, it intent.Intent) (string, error) {
	// A template the user has taught the assistant wins over the built-in.
	override := ""
	rec, err := r.store.Get(ctx, memory.CategoryTemplate, it.Template)
	if err == nil {
		override = rec.ValueString()
	} else if !errors.Is(err, memory.ErrNotFound) {
		r.logger.Warn("template lookup failed", "template", it.Template, "error", err)
	}
	return r.ws.CreateFile(it.FileName, it.Template, override)
}

func (r *Responder) setReminder(it intent.Intent) (string, error) {
	due := reminder.ResolveDue(it.ReminderWhen, time.Now())
	rem, err := r.reminders.Add(it.ReminderText, due)
	if err != nil {
		return "", err
	}
	if r.metrics != nil {
		r.metrics.PendingReminders.Set(float64(len(r.reminders.Pending())))
	}
	return fmt.Sprintf("I'll remind you about %s at %s.",
		rem.Text, rem.DueTime.Local().Format("Monday 15:04")), nil
}

func (r *Responder) dashboard(ctx context.Context, hist *session.History) (string, error) {
	var prefs, facts, templates int
	if recs, err := r.store.All(ctx, memory.CategoryPreference); err == nil {
		prefs = len(recs)
	}
	if recs, err := r.store.All(ctx, memory.CategoryFact); err == nil {
		facts = len(recs)
	}
	if recs, err := r.store.All(ctx, memory.CategoryTemplate); err == nil {
		templates = len(recs)
	}

	all := r.reminders.All()
	pending := len(r.reminders.Pending())

	return fmt.Sprintf(
		"Here's where we are. %d turns this session since %s. Memory: %d preferences, %d facts, %d templates. Reminders: %d pending of %d total.",
		hist.TotalTurns(),
		hist.StartedAt().Local().Format("15:04"),
		prefs, facts, templates,
		pending, len(all),
	), nil
}

func (r *Responder) chat(ctx context.Context, hist *session.History, text string) (string, error) {
	req := brain.Request{
		System:   r.systemPrompt(ctx),
		Messages: historyMessages(hist, r.contextTurns),
		UserText: text,
	}

	start := time.Now()
	resp, err := r.adapter.Complete(ctx, req)
	if r.metrics != nil {
		r.metrics.ObserveBrainLatency(time.Since(start))
	}
	if err != nil {
		return "", &Failure{Kind: FailureRemote, Err: err}
	}
	return capText(resp.Text, r.profile.VerbosityCap), nil
}

func (r *Responder) systemPrompt(ctx context.Context) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are Aria, a voice-driven personal assistant. Style: %s. ", r.profile.SystemStyle)
	b.WriteString("Your replies are spoken aloud, so keep them short and natural.")

	prefs, err := r.store.All(ctx, memory.CategoryPreference)
	if err != nil || len(prefs) == 0 {
		return b.String()
	}
	if len(prefs) > memoryContextLimit {
		prefs = prefs[:memoryContextLimit]
	}
	b.WriteString(" Known user preferences:")
	for _, p := range prefs {
		fmt.Fprintf(&b, " %s=%s;", p.Key, p.ValueString())
	}
	return b.String()
}

func historyMessages(hist *session.History, limit int) []brain.Message {
	turns := hist.Recent(limit)
	out := make([]brain.Message, 0, len(turns))
	for _, t := range turns {
		role := brain.RoleUser
		if t.Speaker == session.SpeakerAssistant {
			role = brain.RoleAssistant
		}
		out = append(out, brain.Message{Role: role, Text: t.Text})
	}
	return out
}
