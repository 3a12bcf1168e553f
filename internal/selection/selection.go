// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selection picks the best content candidate from a generation round.
package selection

import (
	"unicode/utf8"

	"github.com/pdiddy/sage-lens/pkg/types"
)

// Select returns the candidate with the longest content, measured in
// characters. Ties go to the earliest candidate in input order. An empty
// input yields types.ErrNoCandidates.
func Select(candidates []types.ContentCandidate) (types.ContentCandidate, error) {
	if len(candidates) == 0 {
		return types.ContentCandidate{}, types.NewFailure(types.KindNoCandidates, "", nil)
	}

	best, bestLen := 0, Length(candidates[0])
	for i := 1; i < len(candidates); i++ {
		if n := Length(candidates[i]); n > bestLen {
			best, bestLen = i, n
		}
	}
	return candidates[best], nil
}

// Length is the selection score of c: its content length in runes.
func Length(c types.ContentCandidate) int {
	return utf8.RuneCountInString(c.Content)
}
