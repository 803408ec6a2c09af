// Package stream classifies the raw event flow of one turn into the ordered
// sequence of response events a caller consumes. The sequence is lazy,
// finite, and non-restartable: it ends at the first final event or when the
// source runs dry. A debug observer can watch every classified event without
// changing what the caller sees.
package stream
