// Package partialgen generates partial C# declarations from existing ones.
//
// # Pipeline
//
// For each source file the Generator runs three steps:
//
//  1. Parse: tree-sitter parses the file into a syntax tree. Every partial
//     type declaration (optionally only those carrying a configured
//     attribute) becomes a target.
//
//  2. Describe: each target is converted into an immutable description tree.
//     The conversion configuration decides whether the target's partial
//     members and nested types are included and whether it is wrapped in its
//     enclosing types, namespaces and file usings.
//
//  3. Render: the description tree is written back as C# with empty bodies,
//     giving a declaration that compiles alongside the original. A Risor
//     generator script can fill in the target's type body.
//
// Description trees compare and hash structurally, so the fingerprint of a
// tree together with the render options keys a SQLite render cache: an
// unchanged declaration is never rendered twice.
//
// # Usage
//
//	g, err := partialgen.New(
//		partialgen.WithConfiguration(convert.All),
//		partialgen.WithCache(".partialgen/cache.db"),
//	)
//	if err != nil { ... }
//	defer g.Close()
//
//	outs, err := g.GenerateFiles(ctx, paths)
//	written, err := partialgen.WriteOutputs(outs, "")
//
// # Scripts
//
// A script set with [WithScript] runs once per target with the globals
// documented in the internal/runtime package: "target" describes the type,
// and append, line, open_brace, close_brace and raw_string write into its
// body.
package partialgen
