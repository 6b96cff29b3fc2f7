package discussion

import "strings"

// sanitizeResponse strips generation artifacts from accepted oracle output:
// a leading self-identification prefix ("ProBot:" etc.), anything from a
// leaked "SYSTEM ALERT:" or "### YOUR RESPONSE ###" marker onwards, and a
// leading "Response:" label. All matching is case-insensitive. Applied once,
// after the retry loop settles on a final text.
func sanitizeResponse(text string, knownNames []string) string {
	s := strings.TrimSpace(text)

	for _, name := range knownNames {
		if trimmed, ok := trimPrefixFold(s, name+":"); ok {
			s = strings.TrimLeft(trimmed, " \t\n")
			break
		}
	}

	s = cutAtMarker(s, "SYSTEM ALERT:")
	s = cutAtMarker(s, "### YOUR RESPONSE ###")

	if trimmed, ok := trimPrefixFold(s, "Response:"); ok {
		s = strings.TrimLeft(trimmed, " \t\n")
	}

	return strings.TrimSpace(s)
}

// cutAtMarker drops everything from the first case-insensitive occurrence of
// marker to the end of the text.
func cutAtMarker(s, marker string) string {
	idx := strings.Index(strings.ToLower(s), strings.ToLower(marker))
	if idx < 0 {
		return s
	}
	return s[:idx]
}

// trimPrefixFold removes prefix from s if it matches case-insensitively.
func trimPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
