// Package diff turns two statute snapshots into a classified, rollback-able
// change record. It sits on top of the generic sequence differ and adds the
// legal-impact layer: which field changed, how severe the change is, and
// whether eligibility, outcomes, or discretion are affected.
package diff

// ChangeType classifies a single field-level delta.
type ChangeType string

const (
	ChangeAdded     ChangeType = "added"
	ChangeRemoved   ChangeType = "removed"
	ChangeModified  ChangeType = "modified"
	ChangeReordered ChangeType = "reordered"
)

// TargetField names the statute field a change applies to.
type TargetField string

const (
	TargetTitle            TargetField = "title"
	TargetJurisdiction     TargetField = "jurisdiction"
	TargetEffect           TargetField = "effect"
	TargetPrecondition     TargetField = "precondition"
	TargetDiscretionLogic  TargetField = "discretion_logic"
	TargetTemporalValidity TargetField = "temporal_validity"
)

// Target locates the changed field. Index is meaningful only for
// precondition targets, where it is the position in the relevant list.
type Target struct {
	Field TargetField `json:"field"`
	Index int         `json:"index,omitempty"`
}

// Change is one semantic field-level delta between two statute versions.
// OldValue is present for removals and modifications, NewValue for additions
// and modifications.
type Change struct {
	Type        ChangeType `json:"type"`
	Target      Target     `json:"target"`
	Description string     `json:"description"`
	OldValue    *string    `json:"old_value,omitempty"`
	NewValue    *string    `json:"new_value,omitempty"`
}

// Severity grades a diff's legal impact. The ordering is part of the
// contract: callers compare severities, so the numeric order must hold.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityMinor
	SeverityModerate
	SeverityMajor
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityNone:     "none",
	SeverityMinor:    "minor",
	SeverityModerate: "moderate",
	SeverityMajor:    "major",
	SeverityCritical: "critical",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the severity name for JSON payloads.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name; unknown names map to none.
func (s *Severity) UnmarshalText(text []byte) error {
	for sev, name := range severityNames {
		if name == string(text) {
			*s = sev
			return nil
		}
	}
	*s = SeverityNone
	return nil
}

// ImpactAssessment summarizes the legal consequences of a diff.
//
// Invariants: an empty change list has severity none; AffectsOutcome forces
// severity >= major; AffectsEligibility forces severity >= moderate.
type ImpactAssessment struct {
	Severity           Severity `json:"severity"`
	AffectsEligibility bool     `json:"affects_eligibility"`
	AffectsOutcome     bool     `json:"affects_outcome"`
	DiscretionChanged  bool     `json:"discretion_changed"`
	Notes              []string `json:"notes,omitempty"`
}

// escalate raises severity to at least floor; it never downgrades.
func (a *ImpactAssessment) escalate(floor Severity) {
	if floor > a.Severity {
		a.Severity = floor
	}
}

// VersionInfo records which statute versions a diff spans.
type VersionInfo struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// StatuteDiff is the immutable product of one diff invocation.
type StatuteDiff struct {
	StatuteID string           `json:"statute_id"`
	Versions  *VersionInfo     `json:"versions,omitempty"`
	Changes   []Change         `json:"changes"`
	Impact    ImpactAssessment `json:"impact"`
}

// Clone returns a deep copy safe to cache or archive independently.
func (d *StatuteDiff) Clone() *StatuteDiff {
	out := &StatuteDiff{
		StatuteID: d.StatuteID,
		Impact:    d.Impact,
	}
	if d.Versions != nil {
		v := *d.Versions
		out.Versions = &v
	}
	if d.Impact.Notes != nil {
		out.Impact.Notes = append([]string(nil), d.Impact.Notes...)
	}
	out.Changes = make([]Change, len(d.Changes))
	for i, c := range d.Changes {
		out.Changes[i] = cloneChange(c)
	}
	return out
}

func cloneChange(c Change) Change {
	if c.OldValue != nil {
		v := *c.OldValue
		c.OldValue = &v
	}
	if c.NewValue != nil {
		v := *c.NewValue
		c.NewValue = &v
	}
	return c
}

func strPtr(s string) *string { return &s }
