/*
Package ot provides access to the tables of an OpenType font needed to render
TrueType glyph outlines.
Intended audience for this package are glyph decoders and rasterizers, such as
package glyf of this module, and any application needing to have the internal
structure of the outline-related tables available.

Package `ot` will not decode glyph outlines itself, but rather expose the
tables to the client. Tables 'head', 'maxp', 'hhea', 'hmtx', 'OS/2', 'loca' and
'glyf' are interpreted as far as needed to cross-check them against each other:

▪︎ 'head' states the units per em and the format of the offset table 'loca'.

▪︎ 'maxp' states the number of glyphs, which determines the size of 'loca'.

▪︎ 'loca' and 'glyf' must occur together; glyph records in 'glyf' are addressed
by offsets from 'loca' and are decoded lazily by package glyf.

Every other table is kept as a generic table, giving access to its bytes.
Fonts with CFF outlines will parse, but lack tables 'loca' and 'glyf'.

▪︎ Bugs in fonts: many fonts in the wild contain entries that—strictly speaking—infringe
upon the OT specification, but an application using it should not fail because of
recoverable errors. Package `ot` collects warnings for these and fails only on
structural errors. Errors wrap one of the error kinds of this package
(ErrMalformed, ErrTruncated, …), so clients may test for them with errors.Is.

# Status

No font collections nor variable fonts are supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
