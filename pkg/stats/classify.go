package stats

import "strings"

// LineKind classifies one source line.
type LineKind int

const (
	LineCode LineKind = iota
	LineComment
	LineBlank
)

type blockTokenKind int

const (
	blockNone blockTokenKind = iota
	blockStart
	blockEnd
)

// classifier tracks block-comment state across consecutive lines of one
// file. Lines must be fed in order.
type classifier struct {
	lang      Language
	inComment bool
}

// Classify updates the block-comment state from the raw line, then labels
// the line. The opening line of a block counts as a comment; the closing
// line falls back to the single-line rules.
func (c *classifier) Classify(line string) LineKind {
	switch blockToken(line, c.lang, c.inComment) {
	case blockStart:
		c.inComment = true
	case blockEnd:
		c.inComment = false
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return LineBlank
	}
	if c.inComment {
		return LineComment
	}
	return classifySingle(trimmed, c.lang)
}

// classifySingle labels a trimmed, non-blank line outside any block
// comment. Only whole-line comments count; trailing comments after code do
// not.
func classifySingle(trimmed string, lang Language) LineKind {
	switch {
	case slashComment(lang):
		if strings.HasPrefix(trimmed, "//") && len(trimmed) > 2 {
			return LineComment
		}
		if isBlockLine(trimmed) {
			return LineComment
		}
	case hashComment(lang):
		if strings.HasPrefix(trimmed, "#") && len(trimmed) > 1 {
			return LineComment
		}
	case lang == LangCSS:
		if isBlockLine(trimmed) {
			return LineComment
		}
	case lang == LangHTML:
		if strings.HasPrefix(trimmed, "<!--") && strings.HasSuffix(trimmed, "-->") {
			return LineComment
		}
	}
	return LineCode
}

// isBlockLine reports a line that is a complete /* ... */ comment.
func isBlockLine(trimmed string) bool {
	return len(trimmed) >= 4 && strings.HasPrefix(trimmed, "/*") && strings.HasSuffix(trimmed, "*/")
}

// blockToken reports whether the raw line opens or closes a block comment.
// Detection is textual; markers inside string literals count as well.
func blockToken(line string, lang Language, inComment bool) blockTokenKind {
	if slashComment(lang) || lang == LangCSS {
		start := strings.LastIndex(line, "/*")
		end := strings.LastIndex(line, "*/")
		switch {
		case end == -1 && start != -1:
			return blockStart
		case end != -1 && start == -1:
			return blockEnd
		case end != -1 && start > end:
			return blockStart
		}
		return blockNone
	}

	if lang == LangPython {
		// An odd number of triple quotes flips the docstring state; an even
		// number leaves it where it was.
		count := strings.Count(line, `"""`)
		if count == 0 {
			return blockNone
		}
		odd := count%2 == 1
		if odd != inComment {
			return blockStart
		}
		return blockEnd
	}

	return blockNone
}
