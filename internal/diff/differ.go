package diff

import (
	"fmt"

	"lexdiff/internal/sequence"
	"lexdiff/internal/statute"
)

// Differ compares two statute snapshots field by field and produces a
// StatuteDiff. The comparison order is fixed (title, jurisdiction, effect,
// preconditions, discretion logic, temporal validity) so the change list and
// impact assessment are deterministic for a given input pair.
type Differ struct {
	algorithm Algorithm
	adaptive  bool
}

// DifferOption configures a Differ.
type DifferOption func(*Differ)

// WithAlgorithm pins the sequence algorithm used for precondition lists.
func WithAlgorithm(alg Algorithm) DifferOption {
	return func(d *Differ) {
		d.algorithm = alg
		d.adaptive = false
	}
}

// WithAdaptiveSelection lets the input characteristics pick the sequence
// algorithm per diff instead of a fixed choice.
func WithAdaptiveSelection() DifferOption {
	return func(d *Differ) {
		d.adaptive = true
	}
}

// NewDiffer builds a Differ. The default configuration runs Myers on
// precondition lists, the cheaper choice for near-identical versions.
func NewDiffer(opts ...DifferOption) *Differ {
	d := &Differ{algorithm: AlgorithmMyers}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Diff compares old and new and returns the classified change record.
// Statutes must share an ID; diffing unrelated statutes fails fast with
// ErrStatuteIDMismatch.
func (d *Differ) Diff(old, new *statute.Statute) (*StatuteDiff, error) {
	if old == nil || new == nil {
		return nil, ErrNilStatute
	}
	if old.ID != new.ID {
		return nil, fmt.Errorf("%w: %q vs %q", ErrStatuteIDMismatch, old.ID, new.ID)
	}

	out := &StatuteDiff{StatuteID: old.ID}
	if old.Version != "" || new.Version != "" {
		out.Versions = &VersionInfo{Old: old.Version, New: new.Version}
	}

	d.diffTitle(old, new, out)
	d.diffJurisdiction(old, new, out)
	d.diffEffect(old, new, out)
	d.diffPreconditions(old, new, out)
	d.diffDiscretion(old, new, out)
	d.diffValidity(old, new, out)

	// The severity invariant: no changes means no impact, full stop.
	if len(out.Changes) == 0 {
		out.Impact = ImpactAssessment{Severity: SeverityNone}
	}
	return out, nil
}

func (d *Differ) diffTitle(old, new *statute.Statute, out *StatuteDiff) {
	if old.Title == new.Title {
		return
	}
	out.Changes = append(out.Changes, Change{
		Type:        ChangeModified,
		Target:      Target{Field: TargetTitle},
		Description: "statute title changed",
		OldValue:    strPtr(old.Title),
		NewValue:    strPtr(new.Title),
	})
	out.Impact.escalate(SeverityMinor)
}

func (d *Differ) diffJurisdiction(old, new *statute.Statute, out *StatuteDiff) {
	switch {
	case old.Jurisdiction == new.Jurisdiction:
		return
	case old.Jurisdiction == "":
		out.Changes = append(out.Changes, Change{
			Type:        ChangeAdded,
			Target:      Target{Field: TargetJurisdiction},
			Description: "jurisdiction assigned",
			NewValue:    strPtr(new.Jurisdiction),
		})
	case new.Jurisdiction == "":
		out.Changes = append(out.Changes, Change{
			Type:        ChangeRemoved,
			Target:      Target{Field: TargetJurisdiction},
			Description: "jurisdiction removed",
			OldValue:    strPtr(old.Jurisdiction),
		})
	default:
		out.Changes = append(out.Changes, Change{
			Type:        ChangeModified,
			Target:      Target{Field: TargetJurisdiction},
			Description: "jurisdiction changed",
			OldValue:    strPtr(old.Jurisdiction),
			NewValue:    strPtr(new.Jurisdiction),
		})
	}
	out.Impact.escalate(SeverityMinor)
}

func (d *Differ) diffEffect(old, new *statute.Statute, out *StatuteDiff) {
	if old.Effect.Equal(new.Effect) {
		return
	}
	out.Changes = append(out.Changes, Change{
		Type:        ChangeModified,
		Target:      Target{Field: TargetEffect},
		Description: "legal effect changed",
		OldValue:    strPtr(old.Effect.Summary()),
		NewValue:    strPtr(new.Effect.Summary()),
	})
	// Effect changes alter what legally happens: the highest-impact category.
	out.Impact.AffectsOutcome = true
	out.Impact.escalate(SeverityMajor)
	out.Impact.Notes = append(out.Impact.Notes, "effect change alters applied outcomes")
}

func (d *Differ) diffPreconditions(old, new *statute.Statute, out *StatuteDiff) {
	oldKeys := old.PreconditionKeys()
	newKeys := new.PreconditionKeys()

	var result sequence.Result[string]
	switch d.pickAlgorithm(old, new) {
	case AlgorithmPatience:
		result = sequence.Patience(oldKeys, newKeys)
	default:
		result = sequence.Myers(oldKeys, newKeys)
	}

	oldIdx, newIdx := 0, 0
	eligibilityChanged := false
	for _, op := range result.Ops {
		switch op.Kind {
		case sequence.Keep:
			oldIdx++
			newIdx++
		case sequence.Delete:
			out.Changes = append(out.Changes, Change{
				Type:        ChangeRemoved,
				Target:      Target{Field: TargetPrecondition, Index: oldIdx},
				Description: "precondition removed",
				OldValue:    strPtr(op.Elem),
			})
			eligibilityChanged = true
			oldIdx++
		case sequence.Insert:
			out.Changes = append(out.Changes, Change{
				Type:        ChangeAdded,
				Target:      Target{Field: TargetPrecondition, Index: newIdx},
				Description: "precondition added",
				NewValue:    strPtr(op.Elem),
			})
			eligibilityChanged = true
			newIdx++
		}
	}

	if eligibilityChanged {
		out.Impact.AffectsEligibility = true
		out.Impact.escalate(SeverityModerate)
		out.Impact.Notes = append(out.Impact.Notes, "eligibility criteria changed")
	}
}

func (d *Differ) diffDiscretion(old, new *statute.Statute, out *StatuteDiff) {
	oldLogic, newLogic := old.DiscretionLogic, new.DiscretionLogic
	switch {
	case oldLogic == nil && newLogic == nil:
		return
	case oldLogic != nil && newLogic != nil && *oldLogic == *newLogic:
		return
	case oldLogic == nil:
		out.Changes = append(out.Changes, Change{
			Type:        ChangeAdded,
			Target:      Target{Field: TargetDiscretionLogic},
			Description: "discretion logic introduced",
			NewValue:    strPtr(*newLogic),
		})
	case newLogic == nil:
		out.Changes = append(out.Changes, Change{
			Type:        ChangeRemoved,
			Target:      Target{Field: TargetDiscretionLogic},
			Description: "discretion logic removed",
			OldValue:    strPtr(*oldLogic),
		})
	default:
		out.Changes = append(out.Changes, Change{
			Type:        ChangeModified,
			Target:      Target{Field: TargetDiscretionLogic},
			Description: "discretion logic changed",
			OldValue:    strPtr(*oldLogic),
			NewValue:    strPtr(*newLogic),
		})
	}
	out.Impact.DiscretionChanged = true
	out.Impact.escalate(SeverityModerate)
	out.Impact.Notes = append(out.Impact.Notes, "discretionary decision path changed")
}

func (d *Differ) diffValidity(old, new *statute.Statute, out *StatuteDiff) {
	oldV := validityOrZero(old.Validity)
	newV := validityOrZero(new.Validity)
	if oldV.Equal(newV) {
		return
	}
	out.Changes = append(out.Changes, Change{
		Type:        ChangeModified,
		Target:      Target{Field: TargetTemporalValidity},
		Description: "temporal validity changed",
		OldValue:    strPtr(formatValidity(oldV)),
		NewValue:    strPtr(formatValidity(newV)),
	})
	out.Impact.escalate(SeverityMinor)
}

// AlgorithmFor reports which sequence algorithm Diff will run for this input
// pair. Exposed so callers can record the choice in metrics.
func (d *Differ) AlgorithmFor(old, new *statute.Statute) Algorithm {
	return d.pickAlgorithm(old, new)
}

func (d *Differ) pickAlgorithm(old, new *statute.Statute) Algorithm {
	if !d.adaptive {
		return d.algorithm
	}
	return Analyze(old, new).Recommend()
}

func validityOrZero(v *statute.TemporalValidity) statute.TemporalValidity {
	if v == nil {
		return statute.TemporalValidity{}
	}
	return *v
}

func formatValidity(v statute.TemporalValidity) string {
	from, until := "open", "open"
	if v.EffectiveFrom != nil {
		from = v.EffectiveFrom.UTC().Format("2006-01-02")
	}
	if v.ExpiresAt != nil {
		until = v.ExpiresAt.UTC().Format("2006-01-02")
	}
	return fmt.Sprintf("effective %s until %s", from, until)
}
