// Package emit provides Emitter, an indentation-aware text sink used to write
// generated source code.
//
// An Emitter tracks the current indent level and whether the next write
// starts a fresh line. Indentation is written lazily by Append, so blank
// lines never carry trailing whitespace. Every method returns the receiver so
// calls can be chained:
//
//	e := emit.New()
//	e.Append("public class Test").NewLine().OpenBrace()
//	e.Line("// ...")
//	e.CloseBrace()
//
// An Emitter is owned by a single goroutine. Create one per output unit and
// discard it after calling String.
package emit

import (
	"strings"
)

// DefaultTabString is the indentation written per level.
const DefaultTabString = "    "

// Emitter accumulates formatted text.
type Emitter struct {
	b           strings.Builder
	indent      int
	tabsPending bool
	scopes      []int

	tab       string
	autoBrace bool
	newline   string
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithTabString sets the text written once per indent level.
func WithTabString(tab string) Option {
	return func(e *Emitter) {
		e.tab = tab
	}
}

// WithAutoIndentOnBrace makes Append adjust the indent when the appended text
// is exactly "{" (indent after) or "}" (unindent before).
func WithAutoIndentOnBrace(enabled bool) Option {
	return func(e *Emitter) {
		e.autoBrace = enabled
	}
}

// WithNewLine sets the line terminator. Defaults to "\n".
func WithNewLine(nl string) Option {
	return func(e *Emitter) {
		e.newline = nl
	}
}

// New creates an empty Emitter at indent level zero.
func New(opts ...Option) *Emitter {
	e := &Emitter{
		tabsPending: true,
		tab:         DefaultTabString,
		newline:     "\n",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TabString returns the configured per-level indentation.
func (e *Emitter) TabString() string { return e.tab }

// AutoIndentOnBrace reports whether brace auto-indent is enabled.
func (e *Emitter) AutoIndentOnBrace() bool { return e.autoBrace }

// CurrentIndent returns the current indent level.
func (e *Emitter) CurrentIndent() int { return e.indent }

// TabsPending reports whether the next Append starts a new line and will
// write indentation first.
func (e *Emitter) TabsPending() bool { return e.tabsPending }

// SetIndent sets an absolute indent level. Negative values clamp to zero.
func (e *Emitter) SetIndent(level int) *Emitter {
	e.indent = max(0, level)
	return e
}

// Indent increases the indent level by one.
func (e *Emitter) Indent() *Emitter { return e.SetIndent(e.indent + 1) }

// Unindent decreases the indent level by one, stopping at zero.
func (e *Emitter) Unindent() *Emitter { return e.SetIndent(e.indent - 1) }

// EnterScope saves the current indent and switches to an absolute level.
// Scopes nest; each ExitScope restores the level saved by the matching
// EnterScope.
func (e *Emitter) EnterScope(level int) *Emitter {
	e.scopes = append(e.scopes, e.indent)
	return e.SetIndent(level)
}

// ExitScope restores the indent saved by the latest EnterScope. It does
// nothing when no scope is open.
func (e *Emitter) ExitScope() *Emitter {
	if len(e.scopes) == 0 {
		return e
	}
	last := len(e.scopes) - 1
	level := e.scopes[last]
	e.scopes = e.scopes[:last]
	return e.SetIndent(level)
}

func (e *Emitter) tabs() {
	if !e.tabsPending {
		return
	}
	for range e.indent {
		e.b.WriteString(e.tab)
	}
	e.tabsPending = false
}

// write emits text with pending indentation and no brace handling.
func (e *Emitter) write(text string) {
	if text == "" {
		return
	}
	e.tabs()
	e.b.WriteString(text)
}

// Append writes pending indentation followed by text. It does not track
// newlines inside text.
func (e *Emitter) Append(text string) *Emitter {
	if e.autoBrace && text == "}" {
		e.Unindent()
	}
	e.write(text)
	if e.autoBrace && text == "{" {
		e.Indent()
	}
	return e
}

// NewLine writes a line terminator. Indentation for the next line is
// deferred until the next Append.
func (e *Emitter) NewLine() *Emitter {
	e.b.WriteString(e.newline)
	e.tabsPending = true
	return e
}

// Line appends text and ends the line. Blank text produces an empty line
// without indentation.
func (e *Emitter) Line(text string) *Emitter {
	if strings.TrimSpace(text) == "" {
		return e.NewLine()
	}
	return e.Append(text).NewLine()
}

// LineLine appends text followed by two line terminators.
func (e *Emitter) LineLine(text string) *Emitter {
	return e.Append(text).NewLine().NewLine()
}

// OpenBrace writes "{" on its own line and indents.
func (e *Emitter) OpenBrace() *Emitter {
	e.write("{")
	return e.NewLine().Indent()
}

// CloseBrace unindents and writes "}" on its own line.
func (e *Emitter) CloseBrace() *Emitter {
	e.Unindent()
	e.write("}")
	return e.NewLine()
}

// FileMarker writes the nullable-context directive that heads generated
// files, followed by a blank line.
func (e *Emitter) FileMarker() *Emitter {
	return e.Append("#nullable enable").NewLine().NewLine()
}

// Reset discards all written text and indentation state. Configuration is
// kept.
func (e *Emitter) Reset() *Emitter {
	e.b.Reset()
	e.indent = 0
	e.scopes = nil
	e.tabsPending = true
	return e
}

// String returns the accumulated text.
func (e *Emitter) String() string { return e.b.String() }

// Len returns the number of bytes written so far.
func (e *Emitter) Len() int { return e.b.Len() }
