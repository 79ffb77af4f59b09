package view

import "strings"

// Sentence terminators for locale-aware splitting: ASCII plus CJK full-width
// punctuation and ellipsis.
func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？', '…':
		return true
	}
	return false
}

// SplitSentences splits text on terminal punctuation, keeping the terminator
// attached to its sentence. Runs of terminators ("...", "?!") stay together.
func SplitSentences(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	var out []string
	var cur []rune

	for i, r := range runes {
		cur = append(cur, r)
		if !isTerminator(r) {
			continue
		}
		if i+1 < len(runes) && isTerminator(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(cur)); s != "" {
			out = append(out, s)
		}
		cur = nil
	}
	if s := strings.TrimSpace(string(cur)); s != "" {
		out = append(out, s)
	}
	return out
}

// JoinSentences reassembles sentences, separating with a space only after
// ASCII terminators; CJK sentences join directly.
func JoinSentences(sentences []string) string {
	var b strings.Builder
	for i, s := range sentences {
		if i > 0 && endsASCII(sentences[i-1]) {
			b.WriteByte(' ')
		}
		b.WriteString(s)
	}
	return b.String()
}

func endsASCII(s string) bool {
	if s == "" {
		return false
	}
	last := rune(s[len(s)-1])
	return last == '.' || last == '!' || last == '?'
}

// firstSentences returns the leading n sentences of text as one string.
func firstSentences(text string, n int) string {
	sentences := SplitSentences(text)
	if len(sentences) > n {
		sentences = sentences[:n]
	}
	return JoinSentences(sentences)
}
