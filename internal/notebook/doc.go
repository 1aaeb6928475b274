// Package notebook discovers notebook documents under a source root and
// computes where their reports belong.
//
// Discovery is a recursive scan filtered by file extension. Any path that
// contains an excluded directory segment (".ipynb_checkpoints" by default) is
// skipped, so auto-saved checkpoint copies never reach the converter.
// MirrorDir maps a notebook to the matching subdirectory of the output root.
package notebook
