// Package types defines the data model shared across the parser: raw export
// elements, coerced rows, the four output tables, and the structured scalar
// values (quantities with units, device descriptors) that coercion produces.
package types
