package reference

import "embed"

// FS contains the bundled states, income brackets and test types.
//
//go:embed *.yaml
var FS embed.FS
