package pashmak

import _ "embed"

//go:embed lib/stdlib.pashm
var stdlibSource string

// modules holds the library sources addressable as @name include targets.
var modules = map[string]string{
	"stdlib": stdlibSource,
}
