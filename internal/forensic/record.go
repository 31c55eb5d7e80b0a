// Package forensic implements the tamper-evident audit trail for statute
// decisions and diffs. Records are hash-chained and persisted to an
// append-only NDJSON file: each record's hash covers the previous record's
// hash, so any retroactive edit breaks the chain from that point forward.
package forensic

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ActorKind discriminates who performed an audited action.
type ActorKind string

const (
	ActorSystem   ActorKind = "system"
	ActorUser     ActorKind = "user"
	ActorExternal ActorKind = "external"
)

// Actor identifies the originator of an audit record. Exactly one variant's
// fields are populated, selected by Kind; the explicit discriminator keeps
// evaluation an exhaustive switch rather than a boxed interface.
type Actor struct {
	Kind      ActorKind `json:"kind"`
	Component string    `json:"component,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Role      string    `json:"role,omitempty"`
	SystemID  string    `json:"system_id,omitempty"`
}

// SystemActor tags a record as produced by an internal component.
func SystemActor(component string) Actor {
	return Actor{Kind: ActorSystem, Component: component}
}

// UserActor tags a record as produced by an authenticated user.
func UserActor(userID, role string) Actor {
	return Actor{Kind: ActorUser, UserID: userID, Role: role}
}

// ExternalActor tags a record as produced by a peered system.
func ExternalActor(systemID string) Actor {
	return Actor{Kind: ActorExternal, SystemID: systemID}
}

// ResultKind discriminates the outcome attached to an audit record.
type ResultKind string

const (
	ResultDeterministic      ResultKind = "deterministic"
	ResultRequiresDiscretion ResultKind = "requires_discretion"
	ResultVoid               ResultKind = "void"
	ResultOverridden         ResultKind = "overridden"
)

// DecisionResult is the outcome of applying a statute to a subject.
// EffectApplied and Parameters are populated only for deterministic results.
type DecisionResult struct {
	Kind          ResultKind        `json:"kind"`
	EffectApplied string            `json:"effect_applied,omitempty"`
	Parameters    map[string]string `json:"parameters,omitempty"`
}

// Deterministic builds a result recording the effect that was applied.
func Deterministic(effect string, params map[string]string) DecisionResult {
	return DecisionResult{Kind: ResultDeterministic, EffectApplied: effect, Parameters: params}
}

// AuditRecord is one immutable entry in the forensic log. Created once via
// NewRecord, appended exactly once; RecordHash and PreviousHash are assigned
// by the storage at append time so the chain reflects true append order.
type AuditRecord struct {
	ID              uuid.UUID      `json:"id"`
	EventType       string         `json:"event_type"`
	Actor           Actor          `json:"actor"`
	StatuteID       string         `json:"statute_id"`
	SubjectID       uuid.UUID      `json:"subject_id"`
	DecisionContext string         `json:"decision_context"`
	Result          DecisionResult `json:"result"`
	Timestamp       time.Time      `json:"timestamp"`
	RecordHash      string         `json:"record_hash"`
	PreviousHash    *string        `json:"previous_hash,omitempty"`
}

// NewRecord constructs an unchained audit record with a fresh ID and
// timestamp. The chain hash is filled in when the record is stored.
func NewRecord(eventType string, actor Actor, statuteID string, subjectID uuid.UUID, decisionContext string, result DecisionResult) *AuditRecord {
	return &AuditRecord{
		ID:              uuid.New(),
		EventType:       eventType,
		Actor:           actor,
		StatuteID:       statuteID,
		SubjectID:       subjectID,
		DecisionContext: decisionContext,
		Result:          result,
		Timestamp:       time.Now().UTC(),
	}
}

// computeHash calculates the chained SHA-256 hash for a record. The hash
// covers the previous record's hash, so modifying any entry invalidates all
// subsequent entries.
//
// Formula: SHA-256(prev_hash | id | event_type | statute_id | subject_id |
// timestamp | result_kind), hex-encoded.
func computeHash(r *AuditRecord, prevHash string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s|%s|%s",
		prevHash, r.ID, r.EventType, r.StatuteID, r.SubjectID,
		r.Timestamp.UTC().Format(time.RFC3339Nano), r.Result.Kind)
	return hex.EncodeToString(h.Sum(nil))
}

// verifyRecord checks whether a record's stored hash matches its contents
// given the preceding hash.
func verifyRecord(r *AuditRecord, prevHash string) bool {
	return r.RecordHash == computeHash(r, prevHash)
}
