/*
Package rect implements color tree nodes over axis-aligned rectangles.

A rectangle (x, y, w, h) covers the half-open set of positions
[x, x+w) × [y, y+h). Children have to lie within their parent's rectangle
and must not overlap their siblings; AddChild rejects violations, which keeps
the statistics of package colortree free of double counting.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package rect

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'colortree'
func tracer() tracing.Trace {
	return tracing.Select("colortree")
}
