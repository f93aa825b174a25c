package htmlprettify

import (
	"strings"

	"golang.org/x/net/html"
)

// frame is an open element on the printer stack.
type frame struct {
	name   string
	depth  int  // indentation level of the element's own tags
	inline bool // inline elements do not indent their children
	line   int  // output line the start tag was written to
}

// printer accumulates one output line at a time.
type printer struct {
	indent string
	out    strings.Builder

	line      strings.Builder
	lineDepth int
	lineNo    int
	blank     bool

	depth int
	stack []frame

	// preserve is the name of the element whose content is copied verbatim,
	// and preserveNest counts nested occurrences of it.
	preserve     string
	preserveNest int
}

func (p *printer) token(tt html.TokenType, name, raw string) {
	if p.preserve != "" {
		p.preserved(tt, name, raw)
		return
	}
	switch tt {
	case html.TextToken:
		p.text(raw)
	case html.StartTagToken:
		p.startTag(name, raw, false)
	case html.SelfClosingTagToken:
		p.startTag(name, raw, true)
	case html.EndTagToken:
		p.endTag(name, raw)
	case html.CommentToken, html.DoctypeToken:
		p.flush()
		p.write(raw)
		p.flush()
	}
}

func (p *printer) startTag(name, raw string, selfClosing bool) {
	tag := normalizeTag(raw)
	for n := len(p.stack); n > 0 && impliedEnd[name][p.stack[n-1].name]; n-- {
		p.depth = p.stack[n-1].depth
		p.stack = p.stack[:n-1]
	}
	// The tokenizer reads the text after a self-closing script, style or
	// textarea as raw text up to the matching end tag, so those still open
	// an element.
	opens := rawTextElements[name] || preserveElements[name]
	void := (selfClosing && !opens) || voidElements[name]
	inline := inlineElements[name]
	switch {
	case void && inline:
		p.write(tag)
		return
	case void:
		p.flush()
		p.write(tag)
		p.flush()
		return
	case inline:
		p.write(tag)
		p.push(name, true)
	default:
		p.flush()
		p.write(tag)
		p.push(name, false)
		p.depth++
	}
	if preserveElements[name] {
		p.preserve = name
		p.preserveNest = 1
	}
}

func (p *printer) endTag(name, raw string) {
	tag := normalizeTag(raw)
	i := p.find(name)
	if i < 0 {
		p.write(tag)
		return
	}
	// Anything above i was left open in the source and closes here.
	f := p.stack[i]
	p.stack = p.stack[:i]
	p.depth = f.depth

	switch {
	case f.inline:
		p.write(tag)
	case f.line == p.lineNo && p.line.Len() > 0:
		p.write(tag)
		p.flush()
	default:
		p.flush()
		p.write(tag)
		p.flush()
	}
}

// preserved copies tokens verbatim until the preserving element closes.
func (p *printer) preserved(tt html.TokenType, name, raw string) {
	switch {
	case tt == html.StartTagToken && name == p.preserve:
		p.preserveNest++
	case tt == html.EndTagToken && name == p.preserve:
		p.preserveNest--
		if p.preserveNest == 0 {
			p.preserve = ""
			p.endTag(name, raw)
			return
		}
	}
	p.line.WriteString(raw)
}

func (p *printer) text(s string) {
	if n := len(p.stack); n > 0 && rawTextElements[p.stack[n-1].name] {
		p.rawText(s)
		return
	}
	segs := strings.Split(s, "\n")
	for i, seg := range segs {
		if i > 0 {
			p.flush()
		}
		seg = collapseSpace(seg)
		if strings.TrimSpace(seg) == "" {
			switch {
			case i > 0 && i < len(segs)-1:
				p.blank = true
			case len(segs) == 1 && seg != "":
				p.write(" ")
			}
			continue
		}
		p.write(seg)
	}
}

// rawText re-indents a script or style body one level below its tag.
func (p *printer) rawText(s string) {
	if strings.TrimSpace(s) == "" {
		return
	}
	p.flush()
	lines := strings.Split(s, "\n")
	for strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	for _, l := range dedent(lines) {
		l = strings.TrimRight(l, " \t\r")
		if l == "" {
			p.out.WriteByte('\n')
			continue
		}
		p.line.WriteString(l)
		p.lineDepth = p.depth
		p.flush()
	}
}

func (p *printer) push(name string, inline bool) {
	p.stack = append(p.stack, frame{name: name, depth: p.depth, inline: inline, line: p.lineNo})
}

func (p *printer) find(name string) int {
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i].name == name {
			return i
		}
	}
	return -1
}

// write appends s to the current line, starting the line at the current depth.
func (p *printer) write(s string) {
	if p.line.Len() == 0 {
		s = strings.TrimLeft(s, " ")
		if s == "" {
			return
		}
		p.lineDepth = p.depth
	} else if strings.HasPrefix(s, " ") && strings.HasSuffix(p.line.String(), " ") {
		s = s[1:]
	}
	p.line.WriteString(s)
}

// flush terminates the current line, if any.
func (p *printer) flush() {
	s := strings.TrimRight(p.line.String(), " \t")
	p.line.Reset()
	if s == "" {
		return
	}
	if p.blank && p.out.Len() > 0 {
		p.out.WriteByte('\n')
	}
	p.blank = false
	p.out.WriteString(strings.Repeat(p.indent, p.lineDepth))
	p.out.WriteString(s)
	p.out.WriteByte('\n')
	p.lineNo++
}

// collapseSpace replaces every run of horizontal whitespace with one space.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\r', '\f':
			if !space {
				b.WriteByte(' ')
			}
			space = true
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}

// normalizeTag collapses whitespace inside a tag, leaving quoted values alone.
func normalizeTag(raw string) string {
	var b strings.Builder
	var quote rune
	space := false
	for _, r := range raw {
		if quote != 0 {
			b.WriteRune(r)
			if r == quote {
				quote = 0
			}
			continue
		}
		switch r {
		case ' ', '\t', '\r', '\n', '\f':
			space = true
			continue
		case '"', '\'':
			quote = r
		}
		if space {
			if r != '>' {
				b.WriteByte(' ')
			}
			space = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// dedent strips the leading whitespace common to all non-blank lines.
// Only an identical prefix is removed, so lines mixing tabs and spaces keep
// their relative alignment.
func dedent(lines []string) []string {
	prefix, found := "", false
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lead := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
		if !found {
			prefix, found = lead, true
			continue
		}
		prefix = commonPrefix(prefix, lead)
	}
	if prefix == "" {
		return lines
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimPrefix(l, prefix)
	}
	return out
}

func commonPrefix(a, b string) string {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return a[:n]
}
