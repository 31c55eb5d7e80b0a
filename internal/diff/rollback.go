package diff

// Rollback produces the inverse of a forward diff without access to the
// original statute snapshots: every change keeps its type and target but
// swaps old and new values, and the version span is reversed. Keeping this a
// pure transformation of the diff record means rollback stays reconstructible
// from an archived diff alone, long after the statute snapshots are gone.
//
// The returned diff has exactly as many changes as the input, in the same
// order.
func Rollback(forward *StatuteDiff) *StatuteDiff {
	out := &StatuteDiff{
		StatuteID: forward.StatuteID,
		Impact:    forward.Impact,
		Changes:   make([]Change, len(forward.Changes)),
	}
	if forward.Versions != nil {
		out.Versions = &VersionInfo{Old: forward.Versions.New, New: forward.Versions.Old}
	}
	if forward.Impact.Notes != nil {
		out.Impact.Notes = append([]string(nil), forward.Impact.Notes...)
	}
	out.Impact.Notes = append(out.Impact.Notes, "rollback of forward diff")

	for i, c := range forward.Changes {
		inv := cloneChange(c)
		inv.OldValue, inv.NewValue = inv.NewValue, inv.OldValue
		out.Changes[i] = inv
	}
	return out
}
