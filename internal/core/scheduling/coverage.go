package scheduling

import (
	"fmt"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
)

// DayContext is the view a coverage rule evaluates.
type DayContext struct {
	Date      time.Time
	Roster    domain.Roster
	Rule      *domain.CoverageRule
	IsRamadan bool
}

// FridayAMClosed reports whether AM is disallowed for this day.
func (c DayContext) FridayAMClosed() bool {
	return c.Date.Weekday() == time.Friday && !c.IsRamadan
}

// headcountRule returns the configured rule when it applies to this day.
func (c DayContext) headcountRule() (domain.CoverageRule, bool) {
	if c.Rule == nil || !c.Rule.Enabled || c.Rule.DayOfWeek != c.Date.Weekday() {
		return domain.CoverageRule{}, false
	}
	return *c.Rule, true
}

// Rule is one coverage check.
type Rule interface {
	Name() string
	Evaluate(day DayContext) []domain.ValidationResult
}

// Validator runs a fixed set of rules over a day.
type Validator struct {
	rules []Rule
}

// NewValidator returns a validator for the given rules, or the default set when none are passed.
func NewValidator(rules ...Rule) *Validator {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Validator{rules: rules}
}

// DefaultRules is the standard coverage policy.
func DefaultRules() []Rule {
	return []Rule{
		fridayAMRule{},
		minHeadcountRule{shift: domain.ShiftAM},
		minHeadcountRule{shift: domain.ShiftPM},
		amNotBelowPMRule{},
	}
}

// Validate returns every finding for the day, violations first.
func (v *Validator) Validate(day DayContext) []domain.ValidationResult {
	var violations, warnings []domain.ValidationResult
	for _, r := range v.rules {
		for _, res := range r.Evaluate(day) {
			if res.IsViolation() {
				violations = append(violations, res)
			} else {
				warnings = append(warnings, res)
			}
		}
	}
	return append(violations, warnings...)
}

type fridayAMRule struct{}

func (fridayAMRule) Name() string { return "friday_am_not_allowed" }

func (fridayAMRule) Evaluate(day DayContext) []domain.ValidationResult {
	if !day.FridayAMClosed() || len(day.Roster.AM) == 0 {
		return nil
	}
	empIDs := make([]string, 0, len(day.Roster.AM))
	for _, e := range day.Roster.AM {
		empIDs = append(empIDs, e.EmpID)
	}
	return []domain.ValidationResult{{
		Code:     domain.CodeFridayAMNotAllowed,
		Severity: domain.SeverityViolation,
		Message:  fmt.Sprintf("AM shift is not allowed on Friday: %d employee(s) scheduled AM", len(empIDs)),
		Date:     calendar.DateKey(day.Date),
		EmpIDs:   empIDs,
	}}
}

type minHeadcountRule struct {
	shift domain.Shift
}

func (r minHeadcountRule) Name() string { return "min_" + string(r.shift) }

func (r minHeadcountRule) Evaluate(day DayContext) []domain.ValidationResult {
	rule, ok := day.headcountRule()
	if !ok {
		return nil
	}
	var have, need int
	var code domain.ValidationCode
	switch r.shift {
	case domain.ShiftAM:
		if day.FridayAMClosed() {
			return nil
		}
		have, need, code = len(day.Roster.AM), rule.MinAM, domain.CodeInsufficientAM
	case domain.ShiftPM:
		have, need, code = len(day.Roster.PM), rule.MinPM, domain.CodeInsufficientPM
	case domain.ShiftOff:
		return nil
	}
	if have >= need {
		return nil
	}
	return []domain.ValidationResult{{
		Code:     code,
		Severity: domain.SeverityViolation,
		Message:  fmt.Sprintf("insufficient %s coverage: %d scheduled, %d required", r.shift, have, need),
		Date:     calendar.DateKey(day.Date),
	}}
}

type amNotBelowPMRule struct{}

func (amNotBelowPMRule) Name() string { return "am_not_below_pm" }

func (amNotBelowPMRule) Evaluate(day DayContext) []domain.ValidationResult {
	if _, ok := day.headcountRule(); !ok || day.FridayAMClosed() {
		return nil
	}
	am, pm := len(day.Roster.AM), len(day.Roster.PM)
	if am >= pm {
		return nil
	}
	return []domain.ValidationResult{{
		Code:     domain.CodeAMBelowPM,
		Severity: domain.SeverityWarning,
		Message:  fmt.Sprintf("AM coverage (%d) is below PM coverage (%d)", am, pm),
		Date:     calendar.DateKey(day.Date),
	}}
}
