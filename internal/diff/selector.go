package diff

import "lexdiff/internal/statute"

// Algorithm names a sequence diff strategy for precondition lists.
type Algorithm string

const (
	AlgorithmMyers    Algorithm = "myers"
	AlgorithmPatience Algorithm = "patience"
)

// InputCharacteristics captures the size, similarity, and structure signals
// the selector uses. Analysis of the same statute pair always produces the
// same characteristics, so recommendations are deterministic.
type InputCharacteristics struct {
	OldSize             int
	NewSize             int
	Similarity          float64
	HasComplexStructure bool
}

// Analyze inspects both statutes and summarizes the signals relevant to
// algorithm choice. Similarity is the average of four checks: title match,
// ID match, precondition-count overlap, and effect-type match.
func Analyze(old, new *statute.Statute) InputCharacteristics {
	ch := InputCharacteristics{
		OldSize:             len(old.Preconditions),
		NewSize:             len(new.Preconditions),
		HasComplexStructure: old.DiscretionLogic != nil || new.DiscretionLogic != nil,
	}

	var score float64
	if old.Title == new.Title {
		score++
	}
	if old.ID == new.ID {
		score++
	}
	score += countOverlap(ch.OldSize, ch.NewSize)
	if old.Effect.Type == new.Effect.Type {
		score++
	}
	ch.Similarity = score / 4

	return ch
}

// countOverlap is min/max of the two precondition counts, 1.0 when both are
// empty.
func countOverlap(a, b int) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	min, max := a, b
	if min > max {
		min, max = max, min
	}
	if max == 0 {
		return 0
	}
	return float64(min) / float64(max)
}

// Recommend applies fixed thresholds to pick an algorithm. The default bias
// is toward Myers, the cheaper algorithm for small or similar inputs.
func (c InputCharacteristics) Recommend() Algorithm {
	total := c.OldSize + c.NewSize
	switch {
	case total < 10:
		return AlgorithmMyers
	case c.Similarity > 0.8:
		return AlgorithmMyers
	case c.HasComplexStructure && total > 20:
		return AlgorithmPatience
	case c.Similarity > 0.3 && c.Similarity < 0.8:
		return AlgorithmPatience
	default:
		return AlgorithmMyers
	}
}
