// Package htmlprettify re-indents HTML markup in process.
// It backs the "builtin" formatter, used where bun and html-beautify are not
// available (offline runs, tests).
// It tokenizes with golang.org/x/net/html and never builds a DOM, so template
// syntax embedded in text (e.g. {% block %} or {{ value }}) passes through.
package htmlprettify

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var (
	// ErrInvalidUTF8 is returned when the input is not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("htmlprettify: input is not valid UTF-8")
	// ErrInvalidOptions is returned when Options fail validation.
	ErrInvalidOptions = errors.New("htmlprettify: invalid options")
)

// Options configures the indentation of formatted output.
type Options struct {
	// IndentChar is the character repeated for each indentation step: " " or "\t".
	IndentChar string
	// IndentSize is the number of IndentChar per nesting level.
	IndentSize int
}

// DefaultOptions returns four-space indentation.
func DefaultOptions() Options {
	return Options{IndentChar: " ", IndentSize: 4}
}

// Validate reports whether the options can be used for formatting.
func (o Options) Validate() error {
	if o.IndentChar != " " && o.IndentChar != "\t" {
		return fmt.Errorf("%w: indent char must be a space or a tab, got %q", ErrInvalidOptions, o.IndentChar)
	}
	if o.IndentSize < 0 {
		return fmt.Errorf("%w: indent size must not be negative, got %d", ErrInvalidOptions, o.IndentSize)
	}
	return nil
}

// Format returns src re-indented according to opts.
func Format(src string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	if !utf8.ValidString(src) {
		return "", ErrInvalidUTF8
	}

	p := &printer{indent: strings.Repeat(opts.IndentChar, opts.IndentSize)}
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return "", fmt.Errorf("htmlprettify: tokenize: %w", err)
			}
			break
		}
		// Raw must be copied before TagName, which lowercases the buffer in place.
		raw := string(z.Raw())
		var name string
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken || tt == html.EndTagToken {
			n, _ := z.TagName()
			name = string(n)
		}
		p.token(tt, name, raw)
	}
	p.flush()
	return p.out.String(), nil
}
