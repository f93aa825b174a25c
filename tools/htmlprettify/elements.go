package htmlprettify

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// voidElements never have content or an end tag.
var voidElements = set(
	"area", "base", "br", "col", "embed", "hr", "img", "input",
	"keygen", "link", "meta", "param", "source", "track", "wbr",
)

// inlineElements flow with the surrounding text instead of starting a new line.
var inlineElements = set(
	"a", "abbr", "acronym", "area", "audio", "b", "bdi", "bdo", "big", "br",
	"button", "canvas", "cite", "code", "data", "datalist", "del", "dfn",
	"em", "embed", "i", "iframe", "img", "input", "ins", "kbd", "keygen",
	"label", "map", "mark", "math", "meter", "noscript", "object", "output",
	"progress", "q", "ruby", "s", "samp", "small", "span",
	"strike", "strong", "sub", "sup", "svg", "textarea", "time",
	"tt", "u", "var", "video", "wbr",
)

// preserveElements keep their content byte for byte.
var preserveElements = set("pre", "textarea")

// rawTextElements hold a script or style body that is re-indented as a unit.
var rawTextElements = set("script", "style")

// impliedEnd lists, per start tag, the open siblings it closes when their
// end tag was omitted.
var impliedEnd = map[string]map[string]bool{
	"li":     set("li"),
	"dt":     set("dt", "dd"),
	"dd":     set("dt", "dd"),
	"option": set("option"),
	"tr":     set("tr", "td", "th"),
	"td":     set("td", "th"),
	"th":     set("td", "th"),
}
