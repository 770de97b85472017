package byline

// Prune returns original minus every tag whose ID appears in consumed,
// preserving the original relative order. Subtraction is by term ID, not
// by name. Pure; persisting the residual set is the caller's concern.
func Prune(original, consumed []Tag) []Tag {
	consumedIDs := make(map[int64]bool, len(consumed))
	for _, tag := range consumed {
		consumedIDs[tag.ID] = true
	}

	residual := []Tag{}
	for _, tag := range original {
		if consumedIDs[tag.ID] {
			continue
		}
		residual = append(residual, tag)
	}

	return residual
}
