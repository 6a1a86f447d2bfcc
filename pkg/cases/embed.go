package cases

import "embed"

// builtinSuitesFS embeds the built-in verification suites covering the
// description format and the exploration-order guarantees of the engine.
//
//go:embed suites/*.yml
var builtinSuitesFS embed.FS
