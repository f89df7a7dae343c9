/*
Package otquery answers typed queries about a parsed font: header and profile
data, names, font-wide and per-glyph metrics, and the outline structure of
individual glyphs.

Queries never fail hard on broken fonts. Functions return zero values together
with a flag or an error if the data in question is missing or malformed.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.query'
func tracer() tracing.Trace {
	return tracing.Select("font.query")
}
