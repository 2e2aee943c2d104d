// Package counter provides byte-counting reader and writer wrappers,
// used to track how much compressed data a patch substream has consumed
// and how much output has been flushed.
package counter

// CountCallback is called with the running total every time the wrapped
// reader or writer makes progress.
type CountCallback func(count int64)
