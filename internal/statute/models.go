// Package statute defines the statute value objects the diff engine consumes.
// The full jurisdiction-specific legal model lives outside this service;
// only the fields the differ reads are represented here. Values are treated
// as immutable snapshots once constructed.
package statute

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Effect describes what legally happens when a statute applies.
type Effect struct {
	Type        string            `json:"type"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters,omitempty"`
}

// Equal reports whether two effects are indistinguishable, parameters included.
func (e Effect) Equal(other Effect) bool {
	if e.Type != other.Type || e.Description != other.Description {
		return false
	}
	if len(e.Parameters) != len(other.Parameters) {
		return false
	}
	for k, v := range e.Parameters {
		if ov, ok := other.Parameters[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Summary renders the effect as a single line for change descriptions.
func (e Effect) Summary() string {
	if len(e.Parameters) == 0 {
		return fmt.Sprintf("%s: %s", e.Type, e.Description)
	}
	keys := make([]string, 0, len(e.Parameters))
	for k := range e.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	params := make([]string, 0, len(keys))
	for _, k := range keys {
		params = append(params, k+"="+e.Parameters[k])
	}
	return fmt.Sprintf("%s: %s [%s]", e.Type, e.Description, strings.Join(params, ", "))
}

// Condition is a single precondition gating a statute's applicability.
type Condition struct {
	Kind        string `json:"kind"`
	Field       string `json:"field"`
	Operator    string `json:"operator"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// Key renders the condition's canonical text. The sequence differ compares
// conditions by this key, so two conditions with equal keys are the same
// precondition regardless of description wording.
func (c Condition) Key() string {
	return fmt.Sprintf("%s:%s %s %s", c.Kind, c.Field, c.Operator, c.Value)
}

// TemporalValidity bounds when a statute is in force.
type TemporalValidity struct {
	EffectiveFrom *time.Time `json:"effective_from,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// Equal compares two validity windows, treating nil bounds as open.
func (v TemporalValidity) Equal(other TemporalValidity) bool {
	return timePtrEqual(v.EffectiveFrom, other.EffectiveFrom) &&
		timePtrEqual(v.ExpiresAt, other.ExpiresAt)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Statute is one versioned snapshot of a legal rule.
type Statute struct {
	ID              string            `json:"id"`
	Version         string            `json:"version,omitempty"`
	Title           string            `json:"title"`
	Jurisdiction    string            `json:"jurisdiction,omitempty"`
	Effect          Effect            `json:"effect"`
	Preconditions   []Condition       `json:"preconditions,omitempty"`
	DiscretionLogic *string           `json:"discretion_logic,omitempty"`
	Validity        *TemporalValidity `json:"validity,omitempty"`
}

// PreconditionKeys returns the canonical keys of the statute's preconditions
// in declaration order, ready for sequence diffing.
func (s *Statute) PreconditionKeys() []string {
	keys := make([]string, 0, len(s.Preconditions))
	for _, c := range s.Preconditions {
		keys = append(keys, c.Key())
	}
	return keys
}
