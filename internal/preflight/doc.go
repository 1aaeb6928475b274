// Package preflight provides readiness checks for the converter binary and
// the filesystem paths nbexport reads from and writes to.
//
// The CLI "nbexport check" command runs RunAll and prints each Result. Export
// runs do not call it: a missing converter surfaces as per-notebook failures,
// the same way any other conversion error does.
package preflight
