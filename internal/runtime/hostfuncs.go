package runtime

import (
	"context"
	"fmt"

	"github.com/risor-io/risor/object"
	"go.uber.org/zap"

	"github.com/jward/partialgen/internal/emit"
)

// emitterGlobals returns the host functions that write to e.
//
//	append(text)      text without a line break
//	line(text)        text then a line break
//	newline()         a line break
//	indent()          one level deeper
//	unindent()        one level shallower
//	open_brace()      "{", line break, indent
//	close_brace()     unindent, "}", line break
//	raw_string(text)  a C# raw string literal holding text, then ";"
func emitterGlobals(e *emit.Emitter) map[string]any {
	return map[string]any{
		"append":      textFn("append", func(s string) { e.Append(s) }),
		"line":        textFn("line", func(s string) { e.Line(s) }),
		"raw_string":  textFn("raw_string", func(s string) { e.RawStringLiteral(s) }),
		"newline":     actionFn("newline", func() { e.NewLine() }),
		"indent":      actionFn("indent", func() { e.Indent() }),
		"unindent":    actionFn("unindent", func() { e.Unindent() }),
		"open_brace":  actionFn("open_brace", func() { e.OpenBrace() }),
		"close_brace": actionFn("close_brace", func() { e.CloseBrace() }),
	}
}

// textFn wraps a one-string-argument emitter call as a builtin.
func textFn(name string, fn func(string)) *object.Builtin {
	return object.NewBuiltin(name, func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError(name, 1, len(args))
		}
		s, ok := args[0].(*object.String)
		if !ok {
			return object.Errorf("%s: text must be a string, got %s", name, args[0].Type())
		}
		fn(s.Value())
		return object.Nil
	})
}

// actionFn wraps a no-argument emitter call as a builtin.
func actionFn(name string, fn func()) *object.Builtin {
	return object.NewBuiltin(name, func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 0 {
			return object.NewArgsError(name, 0, len(args))
		}
		fn()
		return object.Nil
	})
}

// logObject provides log.Info/Warn/Error methods for Risor scripts.
type logObject struct {
	logger *zap.Logger
}

func (l *logObject) Info(msg string) {
	l.logger.Info(msg)
}

func (l *logObject) Warn(msg string) {
	l.logger.Warn(msg)
}

func (l *logObject) Error(msg string) {
	l.logger.Error(msg)
}

func mustProxy(v any) object.Object {
	p, err := object.NewProxy(v)
	if err != nil {
		panic(fmt.Sprintf("runtime: proxy error: %v", err))
	}
	return p
}
