// Package rules holds the lint rules shipped with cstlint and the registry
// the driver and the CLI pick them from.
package rules
