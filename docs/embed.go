package docs

import "embed"

// FS contains long-form Markdown docs bundled with the epoch binary.
//
//go:embed index.yaml guide
var FS embed.FS
