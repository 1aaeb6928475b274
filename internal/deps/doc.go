// Package deps reports whether the external programs nbexport shells out to
// are installed, optionally probing them with a version command.
package deps
