// Package machinecode converts 32-bit machine words to and from their
// bit fields, and parses the numeric literals used to spell them.
//
// Fields are always listed most significant first. A layout is a list
// of field widths that must add up to exactly WORD_BITS.
package machinecode
