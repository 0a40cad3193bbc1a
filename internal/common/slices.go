package common

// Dedupe returns s without repeated elements, keeping the first occurrence,
// and the elements that were dropped.
func Dedupe[S ~[]E, E comparable](s S) (S, S) {
	seen := make(map[E]struct{}, len(s))

	var kept, dropped S
	for _, e := range s {
		if _, ok := seen[e]; ok {
			dropped = append(dropped, e)
			continue
		}

		seen[e] = struct{}{}
		kept = append(kept, e)
	}

	return kept, dropped
}
