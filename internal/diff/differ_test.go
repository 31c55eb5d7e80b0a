package diff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexdiff/internal/statute"
)

func baseStatute() *statute.Statute {
	return &statute.Statute{
		ID:           "uk-housing-act-27",
		Version:      "v1",
		Title:        "Housing Assistance Act, Section 27",
		Jurisdiction: "UK",
		Effect: statute.Effect{
			Type:        "grant_benefit",
			Description: "housing assistance granted",
			Parameters:  map[string]string{"amount": "450", "currency": "GBP"},
		},
		Preconditions: []statute.Condition{
			{Kind: "age", Field: "applicant.age", Operator: ">=", Value: "18"},
			{Kind: "residency", Field: "applicant.resident", Operator: "==", Value: "true"},
		},
	}
}

func TestDiffIdenticalStatutesIsEmpty(t *testing.T) {
	differ := NewDiffer()
	s := baseStatute()

	result, err := differ.Diff(s, s)
	require.NoError(t, err)

	assert.Empty(t, result.Changes)
	assert.Equal(t, SeverityNone, result.Impact.Severity)
	assert.False(t, result.Impact.AffectsEligibility)
	assert.False(t, result.Impact.AffectsOutcome)
	assert.False(t, result.Impact.DiscretionChanged)
}

func TestDiffRejectsMismatchedIDs(t *testing.T) {
	differ := NewDiffer()
	old := baseStatute()
	new := baseStatute()
	new.ID = "de-housing-act-3"

	_, err := differ.Diff(old, new)
	require.ErrorIs(t, err, ErrStatuteIDMismatch)
}

func TestDiffRejectsNilStatutes(t *testing.T) {
	differ := NewDiffer()

	_, err := differ.Diff(nil, baseStatute())
	require.ErrorIs(t, err, ErrNilStatute)

	_, err = differ.Diff(baseStatute(), nil)
	require.ErrorIs(t, err, ErrNilStatute)
}

func TestDiffTitleChange(t *testing.T) {
	differ := NewDiffer()
	old := baseStatute()
	new := baseStatute()
	new.Title = "Housing Assistance Act, Section 27 (amended)"

	result, err := differ.Diff(old, new)
	require.NoError(t, err)

	require.Len(t, result.Changes, 1)
	change := result.Changes[0]
	assert.Equal(t, ChangeModified, change.Type)
	assert.Equal(t, TargetTitle, change.Target.Field)
	require.NotNil(t, change.OldValue)
	require.NotNil(t, change.NewValue)
	assert.Equal(t, old.Title, *change.OldValue)
	assert.Equal(t, new.Title, *change.NewValue)
	assert.Equal(t, SeverityMinor, result.Impact.Severity)
}

func TestDiffEffectChangeForcesMajorAndOutcomeFlag(t *testing.T) {
	differ := NewDiffer()
	old := baseStatute()
	new := baseStatute()
	new.Effect.Parameters = map[string]string{"amount": "500", "currency": "GBP"}

	result, err := differ.Diff(old, new)
	require.NoError(t, err)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, TargetEffect, result.Changes[0].Target.Field)
	assert.True(t, result.Impact.AffectsOutcome)
	assert.GreaterOrEqual(t, result.Impact.Severity, SeverityMajor)
}

func TestDiffPreconditionChangeScenario(t *testing.T) {
	// Age threshold raised from 18 to 21: one removal plus one addition at
	// index 0, eligibility affected, severity at least moderate.
	differ := NewDiffer()
	old := baseStatute()
	new := baseStatute()
	new.Preconditions = []statute.Condition{
		{Kind: "age", Field: "applicant.age", Operator: ">=", Value: "21"},
		{Kind: "residency", Field: "applicant.resident", Operator: "==", Value: "true"},
	}

	result, err := differ.Diff(old, new)
	require.NoError(t, err)

	require.Len(t, result.Changes, 2)
	for _, change := range result.Changes {
		assert.Equal(t, TargetPrecondition, change.Target.Field)
		assert.Equal(t, 0, change.Target.Index)
	}
	assert.True(t, result.Impact.AffectsEligibility)
	assert.GreaterOrEqual(t, result.Impact.Severity, SeverityModerate)
}

func TestDiffPreconditionAddedAndRemoved(t *testing.T) {
	differ := NewDiffer()
	old := baseStatute()
	new := baseStatute()
	new.Preconditions = append([]statute.Condition{}, old.Preconditions...)
	new.Preconditions = append(new.Preconditions, statute.Condition{
		Kind: "income", Field: "applicant.income", Operator: "<", Value: "30000",
	})

	result, err := differ.Diff(old, new)
	require.NoError(t, err)

	require.Len(t, result.Changes, 1)
	change := result.Changes[0]
	assert.Equal(t, ChangeAdded, change.Type)
	assert.Equal(t, TargetPrecondition, change.Target.Field)
	assert.Equal(t, 2, change.Target.Index)
	assert.Nil(t, change.OldValue)
	require.NotNil(t, change.NewValue)
	assert.True(t, result.Impact.AffectsEligibility)
}

func TestDiffDiscretionChange(t *testing.T) {
	differ := NewDiffer()
	old := baseStatute()
	new := baseStatute()
	logic := "caseworker may waive residency for hardship"
	new.DiscretionLogic = &logic

	result, err := differ.Diff(old, new)
	require.NoError(t, err)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, ChangeAdded, result.Changes[0].Type)
	assert.Equal(t, TargetDiscretionLogic, result.Changes[0].Target.Field)
	assert.True(t, result.Impact.DiscretionChanged)
}

func TestDiffTemporalValidityChange(t *testing.T) {
	differ := NewDiffer()
	old := baseStatute()
	new := baseStatute()
	from := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	new.Validity = &statute.TemporalValidity{EffectiveFrom: &from}

	result, err := differ.Diff(old, new)
	require.NoError(t, err)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, TargetTemporalValidity, result.Changes[0].Target.Field)
	// Validity shifts alone never force the outcome or eligibility floors.
	assert.False(t, result.Impact.AffectsOutcome)
	assert.False(t, result.Impact.AffectsEligibility)
}

func TestDiffFieldEvaluationOrderIsFixed(t *testing.T) {
	differ := NewDiffer()
	old := baseStatute()
	new := baseStatute()
	new.Title = "changed"
	new.Jurisdiction = "EU"
	new.Effect.Type = "deny_benefit"
	new.Preconditions = new.Preconditions[:1]
	logic := "discretionary review"
	new.DiscretionLogic = &logic

	result, err := differ.Diff(old, new)
	require.NoError(t, err)

	fields := make([]TargetField, 0, len(result.Changes))
	for _, c := range result.Changes {
		fields = append(fields, c.Target.Field)
	}
	assert.Equal(t, []TargetField{
		TargetTitle,
		TargetJurisdiction,
		TargetEffect,
		TargetPrecondition,
		TargetDiscretionLogic,
	}, fields)
}

func TestDiffDeterminism(t *testing.T) {
	differ := NewDiffer()
	old := baseStatute()
	new := baseStatute()
	new.Title = "retitled"
	new.Preconditions = []statute.Condition{
		{Kind: "age", Field: "applicant.age", Operator: ">=", Value: "21"},
	}

	first, err := differ.Diff(old, new)
	require.NoError(t, err)
	second, err := differ.Diff(old, new)
	require.NoError(t, err)

	assert.Equal(t, first.Changes, second.Changes)
	assert.Equal(t, first.Impact, second.Impact)
}

func TestDiffSeverityFloorsHold(t *testing.T) {
	differ := NewDiffer()
	variants := []*statute.Statute{}

	title := baseStatute()
	title.Title = "amended title"
	variants = append(variants, title)

	effect := baseStatute()
	effect.Effect.Description = "assistance denied"
	variants = append(variants, effect)

	precond := baseStatute()
	precond.Preconditions = nil
	variants = append(variants, precond)

	both := baseStatute()
	both.Effect.Type = "deny_benefit"
	both.Preconditions = nil
	variants = append(variants, both)

	for _, v := range variants {
		result, err := differ.Diff(baseStatute(), v)
		require.NoError(t, err)

		if result.Impact.AffectsOutcome {
			assert.GreaterOrEqual(t, result.Impact.Severity, SeverityMajor)
		}
		if result.Impact.AffectsEligibility {
			assert.GreaterOrEqual(t, result.Impact.Severity, SeverityModerate)
		}
		if len(result.Changes) == 0 {
			assert.Equal(t, SeverityNone, result.Impact.Severity)
		}
	}
}

func TestDiffWithPatienceAlgorithmMatchesSemantics(t *testing.T) {
	differ := NewDiffer(WithAlgorithm(AlgorithmPatience))
	old := baseStatute()
	new := baseStatute()
	new.Preconditions = []statute.Condition{
		old.Preconditions[1],
		{Kind: "income", Field: "applicant.income", Operator: "<", Value: "30000"},
	}

	result, err := differ.Diff(old, new)
	require.NoError(t, err)

	assert.True(t, result.Impact.AffectsEligibility)
	types := map[ChangeType]int{}
	for _, c := range result.Changes {
		types[c.Type]++
	}
	assert.Equal(t, 1, types[ChangeRemoved])
	assert.Equal(t, 1, types[ChangeAdded])
}
