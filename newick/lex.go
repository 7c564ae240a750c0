package newick

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"
)

type itemType int

const (
	itemError itemType = iota
	itemEOF
	itemTerminal
	itemDescendentsStart
	itemDescendentsEnd
	itemSubtree
)

const (
	eof           = 0
	terminal      = ';'
	descDelimiter = ','
	descStart     = '('
	descEnd       = ')'
	quote         = '\''
	commentStart  = '['
	commentEnd    = ']'
	lengthStart   = ':'
)

// unquoteBanned lists the characters that force a label to be quoted when
// it is written.
const unquoteBanned = " \t\n\r()[]':;,"

type stateFn func(lx *lexer) stateFn

type lexer struct {
	input io.Reader
	buf   string
	start int
	pos   int
	width int
	line  int
	state stateFn
	items chan item
}

type item struct {
	typ  itemType
	val  string
	line int
}

func (lx *lexer) nextItem() item {
	for {
		select {
		case item := <-lx.items:
			return item
		default:
			if lx.state == nil {
				return item{itemEOF, "", lx.line}
			}
			lx.state = lx.state(lx)
		}
	}
}

func lex(input io.Reader) *lexer {
	lx := &lexer{
		input: bufio.NewReader(input),
		buf:   "",
		state: lexDescendents,
		line:  1,
		items: make(chan item, 10),
	}
	return lx
}

func (lx *lexer) current() string {
	return lx.buf[lx.start:lx.pos]
}

func (lx *lexer) emit(typ itemType) {
	lx.items <- item{typ, lx.current(), lx.line}
	lx.buf = lx.buf[lx.pos:]
	lx.start, lx.pos = 0, 0
}

func (lx *lexer) next() (r rune) {
	if lx.pos >= len(lx.buf) {
		buf := make([]byte, 4096)
		n, err := lx.input.Read(buf)
		if err != nil || lx.pos >= len(lx.buf)+n {
			lx.width = 0
			return eof
		}
		lx.buf += string(buf[0:n])
	}

	if lx.buf[lx.pos] == '\n' {
		lx.line++
	}
	r, lx.width = utf8.DecodeRuneInString(lx.buf[lx.pos:])
	lx.pos += lx.width
	return r
}

// ignore skips over the pending input before this point.
func (lx *lexer) ignore() {
	lx.start = lx.pos
}

// backup steps back one rune. Can be called only once per call of next.
func (lx *lexer) backup() {
	lx.pos -= lx.width
	if lx.width > 0 && lx.buf[lx.pos] == '\n' {
		lx.line--
	}
}

// peek returns but does not consume the next rune in the input.
func (lx *lexer) peek() rune {
	r := lx.next()
	lx.backup()
	return r
}

// errorf stops all lexing by emitting an error and returning `nil`.
// Characters should be passed through escapeSpecial first.
func (lx *lexer) errorf(format string, values ...interface{}) stateFn {
	lx.items <- item{
		itemError,
		fmt.Sprintf(format, values...),
		lx.line,
	}
	return nil
}

func lexDescendents(lx *lexer) stateFn {
	r := lx.next()
	if isBlank(r) || isNL(r) {
		return lexSkip(lx, lexDescendents)
	}

	switch r {
	case commentStart:
		return lexComment(lx, lexDescendents)
	case descStart:
		lx.ignore()
		lx.emit(itemDescendentsStart)
		return lexSubtreeStart
	case eof:
		lx.emit(itemEOF)
		return nil
	}
	lx.backup()
	lx.ignore()
	return lexLabel
}

func lexSubtreeStart(lx *lexer) stateFn {
	r := lx.next()
	if isBlank(r) || isNL(r) {
		return lexSkip(lx, lexSubtreeStart)
	} else if r == commentStart {
		return lexComment(lx, lexSubtreeStart)
	} else if isSubtreeEnd(r) {
		lx.backup()
		lx.ignore()
		return lexSubtreeEnd
	} else if r == descStart {
		lx.backup()
		return lexDescendents
	}
	lx.backup()
	lx.ignore()
	return lexLabel
}

func lexSubtreeEnd(lx *lexer) stateFn {
	lx.emit(itemSubtree)
	r := lx.next()
	switch r {
	case descDelimiter:
		lx.ignore()
		return lexDescendents
	case descEnd:
		lx.ignore()
		lx.emit(itemDescendentsEnd)
		return lexLabelStart
	case terminal:
		lx.ignore()
		lx.emit(itemTerminal)
		return lexDescendents
	case eof:
		lx.ignore()
		lx.emit(itemTerminal)
		lx.emit(itemEOF)
		return nil
	}
	return lx.errorf("Expected end of subtree ('%s', '%s' or '%s') but got "+
		"'%s' instead.", string(descDelimiter), string(descEnd),
		string(terminal), escapeSpecial(r))
}

// lexLabelStart is the state after the end of a descendent list, where the
// label of the internal node (its support, for exsub) may follow.
func lexLabelStart(lx *lexer) stateFn {
	r := lx.next()
	if isBlank(r) || isNL(r) {
		return lexSkip(lx, lexLabelStart)
	} else if r == commentStart {
		return lexComment(lx, lexLabelStart)
	}
	lx.backup()
	lx.ignore()
	return lexLabel
}

// lexLabel consumes a label up to the end of the subtree. Quoted pieces and
// comments are kept in the emitted value; splitLabel strips them.
func lexLabel(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case r == quote:
		return lexQuoted
	case r == commentStart:
		return lexKeptComment(lx, lexLabel)
	case r == lengthStart:
		return lexLength
	case isSubtreeEnd(r):
		lx.backup()
		return lexSubtreeEnd
	case r == descStart || r == commentEnd:
		return lx.errorf("Found '%s' in an unquoted label, which may not "+
			"contain the following characters: '%s'.", escapeSpecial(r), "()[]':;,")
	}
	return lexLabel
}

func lexQuoted(lx *lexer) stateFn {
	switch lx.next() {
	case quote:
		if lx.peek() == quote {
			lx.next()
			return lexQuoted
		}
		return lexLabel
	case eof:
		return lx.errorf("Unterminated quoted label.")
	}
	return lexQuoted
}

// lexLength consumes a branch length. Its validity is checked when the
// subtree is parsed.
func lexLength(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case r == commentStart:
		return lexKeptComment(lx, lexLength)
	case isSubtreeEnd(r):
		lx.backup()
		return lexSubtreeEnd
	case r == descStart || r == commentEnd || r == quote:
		return lx.errorf("Expected a branch length or the end of a subtree, "+
			"but got '%s' instead.", escapeSpecial(r))
	}
	return lexLength
}

// lexSkip ignores all slurped input and moves on to the next state.
func lexSkip(lx *lexer, nextState stateFn) stateFn {
	return func(lx *lexer) stateFn {
		lx.ignore()
		return nextState
	}
}

// lexComment discards a bracketed comment between tokens. The opening
// bracket has already been consumed.
func lexComment(lx *lexer, nextState stateFn) stateFn {
	return func(lx *lexer) stateFn {
		if !lx.skipComment() {
			return lx.errorf("Unterminated comment.")
		}
		lx.ignore()
		return nextState
	}
}

// lexKeptComment consumes a bracketed comment inside a label without
// discarding the pending input.
func lexKeptComment(lx *lexer, nextState stateFn) stateFn {
	return func(lx *lexer) stateFn {
		if !lx.skipComment() {
			return lx.errorf("Unterminated comment.")
		}
		return nextState
	}
}

func (lx *lexer) skipComment() bool {
	for {
		switch lx.next() {
		case commentEnd:
			return true
		case eof:
			return false
		}
	}
}

func isSubtreeEnd(r rune) bool {
	return r == descDelimiter || r == descEnd || r == terminal || r == eof
}

func isBlank(r rune) bool {
	return r == '\t' || r == ' '
}

func isNL(r rune) bool {
	return r == '\n' || r == '\r'
}

func (itype itemType) String() string {
	switch itype {
	case itemError:
		return "Error"
	case itemEOF:
		return "EOF"
	case itemTerminal:
		return "Terminal"
	case itemDescendentsStart:
		return "Descendents (start)"
	case itemDescendentsEnd:
		return "Descendents (end)"
	case itemSubtree:
		return "Subtree"
	}
	panic(fmt.Sprintf("BUG: Unknown type '%d'.", int(itype)))
}

func (item item) String() string {
	return fmt.Sprintf("(%s, %s)", item.typ.String(), item.val)
}

func escapeSpecial(c rune) string {
	switch c {
	case '\n':
		return "\\n"
	case '\t':
		return "\\t"
	case eof:
		return "EOF"
	}
	return string(c)
}
