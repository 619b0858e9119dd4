// Package visual holds the item records that layouts write geometry into
// and renderers read it back from.
//
// A [Record] is one row of a data table plus its visual state: numeric
// attributes addressed by column name, three polygon slots ([Current],
// [Start] and [End]), a visibility flag, a position and a validated flag.
// Records live in a named [Table]; a [Visualization] maps group names to
// tables and hands them to layouts through the [Group] contract.
//
// Polygon slots are flat coordinate buffers. The slot accessors return the
// stored slice itself so layouts can update it in place; callers that keep
// a polygon across layout runs must copy it.
package visual
