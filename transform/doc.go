// Package transform rewrites the string fields of a decoded request in
// place. It is meant to be called from a [presence.Normalizer] so that a
// value such as "   " collapses to "" before the guard decides whether the
// field is absent.
package transform
