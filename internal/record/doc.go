// Package record defines the Invocation Record data model: the JSON value
// domain recordings carry, the record structure persisted per call, the
// function-identifier and filename conventions, and the canonical
// serialization used for replay comparison.
//
// A record is immutable once written. Its filename (function identifier plus
// a microsecond-resolution timestamp) is its de facto key; the record body
// additionally carries a UUID so same-microsecond collisions remain
// distinguishable after the fact.
package record
