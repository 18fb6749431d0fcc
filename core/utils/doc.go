// Package utils contains small shared helpers: lenient numeric coercion for
// operator input and name normalization for duplicate detection.
package utils
