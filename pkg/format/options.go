package format

// IndentStyle selects the indentation unit emitted by the formatter.
type IndentStyle struct {
	useSpaces bool
	width     int
}

// Tabs indents with a single tab per level.
func Tabs() IndentStyle { return IndentStyle{} }

// Spaces indents with width spaces per level. A non-positive width falls
// back to 4.
func Spaces(width int) IndentStyle {
	if width <= 0 {
		width = 4
	}
	return IndentStyle{useSpaces: true, width: width}
}

// Unit returns the string emitted for one indentation level.
func (s IndentStyle) Unit() string {
	if s.useSpaces {
		unit := make([]byte, s.width)
		for i := range unit {
			unit[i] = ' '
		}
		return string(unit)
	}
	return "\t"
}

// Width returns the visual width of one indentation level. Tabs count as 4.
func (s IndentStyle) Width() int {
	if s.useSpaces {
		return s.width
	}
	return 4
}

// Options controls a single formatting run.
type Options struct {
	// Indent is the indentation style for re-rendered lines. Verbatim
	// regions keep their source indentation.
	Indent IndentStyle

	// MaxLineLength is the visual width used when measuring lines. It does
	// not trigger wrapping yet; the lint rules report violations.
	MaxLineLength int

	// TrailingNewline appends a final newline to non-empty output.
	TrailingNewline bool
}

// DefaultOptions returns the options used by the command line tool when no
// configuration overrides them: tab indentation, 100 columns, trailing
// newline on.
func DefaultOptions() Options {
	return Options{
		Indent:          Tabs(),
		MaxLineLength:   100,
		TrailingNewline: true,
	}
}
