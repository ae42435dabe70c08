// Package fuzztests holds Go fuzz harnesses for the pipeline source ->
// lexer -> parser -> rules -> fixes. They look for panics, hangs and
// inputs that break the lossless round trip.
package fuzztests
