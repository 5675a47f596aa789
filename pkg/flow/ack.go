package flow

import "strings"

// DefaultAckTokens are low-information acknowledgments ignored for
// confirmation-category questions. A bare "ok" to "does this address look
// right?" must not overwrite the pre-filled suggestion; the machine keeps
// waiting for substantive content. The set is configurable via WithAckTokens
// and is not assumed exhaustive.
func DefaultAckTokens() []string {
	return []string{"continue", "ok", "okay", "yes", "yeah", "yep", "sure", "next"}
}

type ackSet map[string]struct{}

func newAckSet(tokens []string) ackSet {
	set := make(ackSet, len(tokens))
	for _, t := range tokens {
		set[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	return set
}

// contains matches the whole trimmed input, case-insensitively. Tokens only
// count as fillers when they are the entire utterance; "yes, 12 Elm St" is
// substantive.
func (s ackSet) contains(input string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(input))]
	return ok
}
