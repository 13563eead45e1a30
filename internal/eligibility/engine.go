package eligibility

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/emeklilik/sgkcalc/internal/domain"
	"github.com/emeklilik/sgkcalc/internal/logging"
	"github.com/emeklilik/sgkcalc/internal/rules"
)

// Observer receives engine events. The metrics package implements it.
type Observer interface {
	RulesExtracted(status domain.StatusCode, count int, elapsed time.Duration)
	CheckCompleted(status domain.StatusCode, report *domain.Report)
	CheckRejected(err error)
}

type nopObserver struct{}

func (nopObserver) RulesExtracted(domain.StatusCode, int, time.Duration) {}
func (nopObserver) CheckCompleted(domain.StatusCode, *domain.Report)     {}
func (nopObserver) CheckRejected(error)                                  {}

// Engine answers eligibility queries against one row table. Rules are
// extracted once per status on first use and shared read-only afterwards,
// so one Engine can serve any number of concurrent queries.
type Engine struct {
	Logger logging.Logger

	table         domain.RowTable
	referenceYear int
	observer      Observer
	now           func() time.Time

	cache sync.Map // domain.StatusCode -> []domain.ExtractedRule
	group singleflight.Group
}

// NewEngine creates an engine over table. The reference year defaults to
// the current calendar year.
func NewEngine(table domain.RowTable) *Engine {
	return &Engine{
		Logger:   logging.NopLogger{},
		table:    table,
		observer: nopObserver{},
		now:      time.Now,
	}
}

// SetLogger sets the logger for the engine. A nil logger disables logging.
func (e *Engine) SetLogger(logger logging.Logger) {
	e.Logger = logging.OrNop(logger)
}

// SetObserver sets the event observer. A nil observer disables events.
func (e *Engine) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	e.observer = o
}

// SetReferenceYear fixes the "as of" year used for ages. Zero means the
// current calendar year.
func (e *Engine) SetReferenceYear(year int) {
	e.referenceYear = year
}

// ReferenceYear returns the year ages are computed against.
func (e *Engine) ReferenceYear() int {
	if e.referenceYear != 0 {
		return e.referenceYear
	}
	return e.now().Year()
}

// Statuses lists the status codes that have a table, in canonical order.
func (e *Engine) Statuses() []domain.StatusCode {
	var out []domain.StatusCode
	for _, s := range domain.AllStatuses {
		if _, ok := e.table[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Rules returns the extracted rules of a status. An unknown status or an
// empty table yields no rules. The returned slice must not be modified.
func (e *Engine) Rules(status domain.StatusCode) []domain.ExtractedRule {
	if _, ok := e.table[status]; !ok {
		return nil
	}
	if cached, ok := e.cache.Load(status); ok {
		return cached.([]domain.ExtractedRule)
	}

	v, _, _ := e.group.Do(string(status), func() (any, error) {
		if cached, ok := e.cache.Load(status); ok {
			return cached, nil
		}
		start := e.now()
		extracted := rules.ExtractTable(e.table[status])
		elapsed := e.now().Sub(start)

		e.cache.Store(status, extracted)
		e.observer.RulesExtracted(status, len(extracted), elapsed)
		e.Logger.Debugf("extracted %d rules from %d rows for %s in %s", len(extracted), len(e.table[status]), status, elapsed)
		if len(extracted) == 0 {
			e.Logger.Warnf("no rules extracted for status %s", status)
		}
		return extracted, nil
	})
	return v.([]domain.ExtractedRule)
}

// Phrases returns every date-range phrase recognized in a status table.
func (e *Engine) Phrases(status domain.StatusCode) []domain.PhraseMatch {
	return rules.Phrases(rules.NormalizeRows(e.table[status]))
}

// Check selects and evaluates the full and partial track rules for a
// profile. Unreadable birth or entry dates are rejected with a
// *domain.FieldError wrapping domain.ErrUnparseableDate. The status is
// normalized to its canonical code; an unknown status is reported with an
// empty status and no rules. A track without a covering rule is reported
// with a nil Rule.
func (e *Engine) Check(profile domain.UserProfile) (*domain.Report, error) {
	if err := checkDates(profile); err != nil {
		e.observer.CheckRejected(err)
		return nil, err
	}
	if status, err := domain.ParseStatus(string(profile.Status)); err == nil {
		profile.Status = status
	} else {
		e.Logger.Debugf("unknown status %q, no rules apply", profile.Status)
		profile.Status = ""
	}

	all := e.Rules(profile.Status)
	report := &domain.Report{
		Profile:       profile,
		ReferenceYear: e.ReferenceYear(),
		RuleCount:     len(all),
		Full:          domain.TrackOutcome{Track: domain.TrackFull},
		Partial:       domain.TrackOutcome{Track: domain.TrackPartial},
	}

	outcomes := map[domain.Track]*domain.TrackOutcome{
		domain.TrackFull:    &report.Full,
		domain.TrackPartial: &report.Partial,
	}
	for _, track := range domain.Tracks {
		outcome := outcomes[track]
		rule, err := SelectTrack(all, track, profile.Gender, profile.EntryDate)
		if err != nil {
			return nil, fmt.Errorf("failed to check profile: %w", err)
		}
		if rule == nil {
			e.Logger.Debugf("no %s rule for %s %s entry %s", outcome.Track, profile.Status, profile.Gender, profile.EntryDate)
			continue
		}

		chosen := *rule
		result := Evaluate(chosen, profile, report.ReferenceYear)
		outcome.Rule = &chosen
		outcome.Result = &result
		e.Logger.Debugf("%s rule from row %d: days %d age %d eligible %t",
			outcome.Track, chosen.Source.Row, chosen.RequiredDays, chosen.RequiredAge, result.Eligible)
	}

	e.observer.CheckCompleted(profile.Status, report)
	return report, nil
}

func checkDates(profile domain.UserProfile) error {
	if _, err := domain.ParseDate(profile.BirthDate); err != nil {
		return &domain.FieldError{Field: "birth_date", Value: profile.BirthDate, Err: domain.ErrUnparseableDate}
	}
	if _, err := domain.ParseDate(profile.EntryDate); err != nil {
		return &domain.FieldError{Field: "entry_date", Value: profile.EntryDate, Err: domain.ErrUnparseableDate}
	}
	return nil
}
