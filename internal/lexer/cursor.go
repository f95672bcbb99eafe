package lexer

import "unicode/utf8"

// cursor walks UTF-8 source by rune, tracking the byte offset and the
// 1-based line/column of the next unconsumed rune. Column counts runes, not
// bytes or display cells, matching the rest of the corpus's Unicode
// handling.
type cursor struct {
	src  string
	i    int
	line int
	col  int
}

func newCursor(src string) *cursor {
	// UTF-8 BOM (EF BB BF) is stripped, matching the rest of the corpus.
	if len(src) >= 3 && src[0] == 0xEF && src[1] == 0xBB && src[2] == 0xBF {
		src = src[3:]
	}
	return &cursor{src: src, line: 1, col: 1}
}

func (c *cursor) atEnd() bool { return c.i >= len(c.src) }

func (c *cursor) peek() rune {
	if c.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.i:])
	return r
}

func (c *cursor) peekNext() rune {
	if c.atEnd() {
		return 0
	}
	_, w := utf8.DecodeRuneInString(c.src[c.i:])
	if c.i+w >= len(c.src) {
		return 0
	}
	r2, _ := utf8.DecodeRuneInString(c.src[c.i+w:])
	return r2
}

// peekTriple reports whether the next three bytes equal three copies of ch
// (used to recognize the closing delimiter of a triple-quoted string).
func (c *cursor) peekTriple(ch byte) bool {
	return c.i+3 <= len(c.src) && c.src[c.i] == ch && c.src[c.i+1] == ch && c.src[c.i+2] == ch
}

func (c *cursor) advance() rune {
	if c.atEnd() {
		return 0
	}
	r, w := utf8.DecodeRuneInString(c.src[c.i:])
	c.i += w
	if r == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return r
}

func (c *cursor) pos() int { return c.i }

func (c *cursor) lineCol() (int, int) { return c.line, c.col }
