package diff

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Token is a syntax-highlighted chunk of text.
type Token struct {
	Text  string
	Color string // ANSI color string, empty for default
}

// HighlightedLine is one source line broken into highlighted tokens.
type HighlightedLine struct {
	Tokens []Token
}

// Plain returns the concatenated plain text of all tokens.
func (hl HighlightedLine) Plain() string {
	var b strings.Builder
	for _, t := range hl.Tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// HighlightLines applies syntax highlighting to source lines for a given
// filename, returning one HighlightedLine per input line. Files with no
// matching lexer pass through unstyled.
func HighlightLines(filename string, lines []string) []HighlightedLine {
	lexer := lexerForFile(filename)
	if lexer == nil {
		return plainLines(lines)
	}

	iterator, err := lexer.Tokenise(nil, strings.Join(lines, "\n"))
	if err != nil {
		return plainLines(lines)
	}

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}

	var result []HighlightedLine
	current := HighlightedLine{}
	for _, token := range iterator.Tokens() {
		// A token value may span lines; flush at each break.
		for i, part := range strings.Split(token.Value, "\n") {
			if i > 0 {
				result = append(result, current)
				current = HighlightedLine{}
			}
			if part == "" {
				continue
			}
			current.Tokens = append(current.Tokens, Token{
				Text:  part,
				Color: colorFor(style, token.Type),
			})
		}
	}
	result = append(result, current)

	for len(result) < len(lines) {
		result = append(result, HighlightedLine{Tokens: []Token{{Text: ""}}})
	}
	return result
}

func plainLines(lines []string) []HighlightedLine {
	result := make([]HighlightedLine, len(lines))
	for i, line := range lines {
		result[i] = HighlightedLine{Tokens: []Token{{Text: line}}}
	}
	return result
}

func lexerForFile(filename string) chroma.Lexer {
	lexer := lexers.Match(filename)
	if lexer == nil {
		if ext := filepath.Ext(filename); ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}
	return lexer
}

func colorFor(style *chroma.Style, tt chroma.TokenType) string {
	if entry := style.Get(tt); entry.Colour.IsSet() {
		return entry.Colour.String()
	}
	return ""
}
