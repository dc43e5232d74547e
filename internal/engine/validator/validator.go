// Package validator checks registered cache units against their on-disk layout.
package validator

import (
	"go.trai.ch/nvshader/internal/core/domain"
)

// Checker verifies a single unit. A nil result means the unit is valid.
type Checker interface {
	Check(e domain.Entry) error
}

// Finding describes one invalid unit.
type Finding struct {
	Path   string
	Type   domain.CacheType
	Reason error
}

// Report is the outcome of a validation pass.
type Report struct {
	Checked  int
	Findings []Finding
}

// InvalidCount returns the number of units that failed their check.
func (r Report) InvalidCount() int {
	return len(r.Findings)
}

// Validator runs structural checks. It never modifies or removes entries.
type Validator struct {
	checker Checker
}

// New creates a Validator backed by checker.
func New(checker Checker) *Validator {
	return &Validator{checker: checker}
}

// Validate checks every entry in order. An entry that cannot be read is
// reported as invalid rather than failing the pass.
func (v *Validator) Validate(entries []domain.Entry) Report {
	report := Report{Checked: len(entries)}
	for _, e := range entries {
		if err := v.checker.Check(e); err != nil {
			report.Findings = append(report.Findings, Finding{
				Path:   e.Path,
				Type:   e.Type,
				Reason: err,
			})
		}
	}
	return report
}
