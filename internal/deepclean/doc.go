// Package deepclean finds and removes build output directories.
//
// It walks a directory tree depth-first, collects every directory named
// "bin" or "obj" (case-insensitive) without descending into it, and then
// removes the collected directories one by one, recording freed space and
// every failure without aborting the batch.
package deepclean
