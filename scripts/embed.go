// Package scripts holds the generator scripts shipped with partialgen.
package scripts

import "embed"

// FS holds describe.risor and the modules it imports.
//
//go:embed *.risor
var FS embed.FS
