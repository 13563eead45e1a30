// Package conversation asks for a profile one question at a time and runs
// the eligibility check once every answer is in. It knows nothing about
// Telegram or terminals; adapters feed it text and send back the replies.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/emeklilik/sgkcalc/internal/config"
	"github.com/emeklilik/sgkcalc/internal/domain"
	"github.com/emeklilik/sgkcalc/internal/logging"
	"github.com/emeklilik/sgkcalc/internal/message"
	"github.com/emeklilik/sgkcalc/internal/rules"
	"github.com/emeklilik/sgkcalc/internal/session"
)

// Checker runs an eligibility check. *eligibility.Engine satisfies it.
type Checker interface {
	Check(profile domain.UserProfile) (*domain.Report, error)
}

// Input is one message from a user.
type Input struct {
	UserID int64
	// Language is the client's language hint, e.g. Telegram's language_code.
	Language string
	Text     string
}

// Reply is what the adapter sends back. Report is set when the message
// completed a check.
type Reply struct {
	Text   string
	Step   session.Step
	Report *domain.Report
}

// Flow drives sessions through the questions.
type Flow struct {
	Logger logging.Logger

	store   session.Store
	checker Checker
	catalog *message.Catalog
	maxDays int
	now     func() time.Time
}

// NewFlow creates a flow. maxDays bounds the contribution day answer.
func NewFlow(store session.Store, checker Checker, catalog *message.Catalog, maxDays int) *Flow {
	return &Flow{
		Logger:  logging.NopLogger{},
		store:   store,
		checker: checker,
		catalog: catalog,
		maxDays: maxDays,
		now:     time.Now,
	}
}

// SetLogger sets the logger. A nil logger disables logging.
func (f *Flow) SetLogger(logger logging.Logger) {
	f.Logger = logging.OrNop(logger)
}

// Handle processes one message. Invalid answers keep the session on the
// same question and reply with a hint; only store failures return an error.
func (f *Flow) Handle(ctx context.Context, in Input) (Reply, error) {
	text := strings.TrimSpace(in.Text)

	if cmd, ok := parseCommand(text); ok {
		return f.command(ctx, in, cmd)
	}

	sess, err := f.store.Get(ctx, in.UserID)
	if errors.Is(err, session.ErrNotFound) {
		return Reply{Text: f.localizer(in.Language).Msg(message.NoSession), Step: session.StepDone}, nil
	}
	if err != nil {
		return Reply{}, fmt.Errorf("failed to load session for user %d: %w", in.UserID, err)
	}

	loc := f.catalog.Localizer(sess.Language)
	next, err := Answer(sess, text, f.maxDays)
	if err != nil {
		f.Logger.Debugf("user %d: invalid answer at step %s: %v", in.UserID, sess.Step, err)
		return Reply{Text: invalidMessage(loc, err, f.maxDays), Step: sess.Step}, nil
	}
	next.UpdatedAt = f.now()

	if next.Step != session.StepDone {
		if err := f.store.Put(ctx, next.Session); err != nil {
			return Reply{}, fmt.Errorf("failed to save session for user %d: %w", in.UserID, err)
		}
		return Reply{Text: loc.Msg(Question(next.Step)), Step: next.Step}, nil
	}

	return f.finish(ctx, loc, next)
}

// ErrorText is the reply for a message Handle failed on: the engine error
// text in the session language, or in the client's language when the
// session cannot be read.
func (f *Flow) ErrorText(ctx context.Context, in Input) string {
	if sess, err := f.store.Get(ctx, in.UserID); err == nil {
		return f.catalog.Localizer(sess.Language).Msg(message.EngineError)
	}
	return f.localizer(in.Language).Msg(message.EngineError)
}

func (f *Flow) finish(ctx context.Context, loc *message.Localizer, done Answered) (Reply, error) {
	if err := f.store.Delete(ctx, done.UserID); err != nil {
		return Reply{}, fmt.Errorf("failed to delete session for user %d: %w", done.UserID, err)
	}

	report, err := f.checker.Check(done.Profile)
	if err != nil {
		f.Logger.Warnf("user %d: check failed: %v", done.UserID, err)
		return Reply{Text: loc.Msg(message.EngineError), Step: session.StepDone}, nil
	}
	f.Logger.Infof("user %d: check completed for status %s", done.UserID, done.Profile.Status)
	return Reply{Text: loc.Report(report), Step: session.StepDone, Report: report}, nil
}

func (f *Flow) command(ctx context.Context, in Input, cmd string) (Reply, error) {
	switch cmd {
	case "start":
		lang := f.language(in.Language)
		sess := session.New(in.UserID, lang, f.now())
		if err := f.store.Put(ctx, sess); err != nil {
			return Reply{}, fmt.Errorf("failed to start session for user %d: %w", in.UserID, err)
		}
		loc := f.catalog.Localizer(lang)
		return Reply{Text: loc.Msg(message.Welcome) + "\n\n" + loc.Msg(message.AskStatus), Step: sess.Step}, nil

	case "iptal", "cancel":
		if err := f.store.Delete(ctx, in.UserID); err != nil {
			return Reply{}, fmt.Errorf("failed to cancel session for user %d: %w", in.UserID, err)
		}
		return Reply{Text: f.localizer(in.Language).Msg(message.Cancelled), Step: session.StepDone}, nil

	default:
		step := session.StepDone
		if sess, err := f.store.Get(ctx, in.UserID); err == nil {
			step = sess.Step
		}
		return Reply{Text: f.localizer(in.Language).Msg(message.Help), Step: step}, nil
	}
}

func (f *Flow) language(hint string) string {
	hint = strings.ToLower(strings.TrimSpace(hint))
	if i := strings.IndexAny(hint, "-_"); i > 0 {
		hint = hint[:i]
	}
	if f.catalog.Supports(hint) {
		return hint
	}
	return message.DefaultLanguage
}

func (f *Flow) localizer(hint string) *message.Localizer {
	return f.catalog.Localizer(f.language(hint))
}

// parseCommand recognizes /start, /iptal, /cancel, /yardim and /help,
// including the "/cmd@botname" form Telegram uses in groups. Any other
// slash command is treated as a help request.
func parseCommand(text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	cmd := strings.Fields(text[1:])
	if len(cmd) == 0 {
		return "help", true
	}
	name, _, _ := strings.Cut(rules.Fold(cmd[0]), "@")
	switch name {
	case "start", "iptal", "cancel":
		return name, true
	default:
		return "help", true
	}
}

// Question returns the message ID asked at step.
func Question(step session.Step) string {
	switch step {
	case session.StepStatus:
		return message.AskStatus
	case session.StepGender:
		return message.AskGender
	case session.StepBirthDate:
		return message.AskBirthDate
	case session.StepEntryDate:
		return message.AskEntryDate
	case session.StepDays:
		return message.AskDays
	default:
		return message.NoSession
	}
}

func invalidMessage(loc *message.Localizer, err error, maxDays int) string {
	switch {
	case errors.Is(err, domain.ErrUnknownStatus):
		return loc.Msg(message.InvalidStatus)
	case errors.Is(err, domain.ErrInvalidGender):
		return loc.Msg(message.InvalidGender)
	case errors.Is(err, domain.ErrUnparseableDate):
		return loc.Msg(message.InvalidDate)
	default:
		return loc.Msgf(message.InvalidDays, map[string]any{"Max": maxDays})
	}
}

// Answered is a session after one accepted answer. Profile is only filled
// once the last question was answered.
type Answered struct {
	session.Session
	Profile domain.UserProfile
}

// Answer applies text as the answer to the session's current question and
// returns the advanced copy. The input session is not modified. Errors are
// *domain.FieldError values.
func Answer(s session.Session, text string, maxDays int) (Answered, error) {
	text = strings.TrimSpace(text)
	switch s.Step {
	case session.StepStatus:
		code, err := domain.ParseStatus(text)
		if err != nil {
			return Answered{}, &domain.FieldError{Field: "status", Value: text, Err: domain.ErrUnknownStatus}
		}
		s.Status = code
		s.Step = session.StepGender

	case session.StepGender:
		g, err := domain.ParseGender(rules.Fold(text))
		if err != nil {
			return Answered{}, &domain.FieldError{Field: "gender", Value: text, Err: domain.ErrInvalidGender}
		}
		s.Gender = g
		s.Step = session.StepBirthDate

	case session.StepBirthDate:
		if _, err := domain.ParseDate(text); err != nil {
			return Answered{}, &domain.FieldError{Field: "birth_date", Value: text, Err: domain.ErrUnparseableDate}
		}
		s.BirthDate = text
		s.Step = session.StepEntryDate

	case session.StepEntryDate:
		if _, err := domain.ParseDate(text); err != nil {
			return Answered{}, &domain.FieldError{Field: "entry_date", Value: text, Err: domain.ErrUnparseableDate}
		}
		s.EntryDate = text
		s.Step = session.StepDays

	case session.StepDays:
		days, err := parseDays(text)
		if err != nil {
			return Answered{}, &domain.FieldError{Field: "contribution_days", Value: text, Err: domain.ErrContributionDaysOutOfRange}
		}
		profile := domain.UserProfile{
			Status:           s.Status,
			Gender:           s.Gender,
			BirthDate:        s.BirthDate,
			EntryDate:        s.EntryDate,
			ContributionDays: days,
		}
		if err := config.ValidateProfile(profile, maxDays); err != nil {
			return Answered{}, err
		}
		s.Step = session.StepDone
		return Answered{Session: s, Profile: profile}, nil

	default:
		return Answered{}, &domain.FieldError{Field: "step", Value: s.Step.String(), Err: errors.New("session already complete")}
	}
	return Answered{Session: s}, nil
}

// parseDays accepts "5975", "5.975" and "5 975".
func parseDays(text string) (int, error) {
	cleaned := strings.NewReplacer(".", "", ",", "", " ", "", "\u00a0", "").Replace(text)
	return strconv.Atoi(cleaned)
}
