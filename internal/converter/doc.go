// Package converter wraps the external notebook-to-HTML conversion tool.
//
// Key types:
//   - Converter: the narrow capability the exporter depends on
//   - Result: success flag plus the tool's diagnostic (stderr) text
//   - NBConvert: Converter backed by `jupyter nbconvert`
//   - Executor: process execution seam; tests inject fakes via WithExecutor
//
// NBConvert never turns a non-zero exit into a Go error. Callers inspect
// Result.OK and surface Result.Diagnostic verbatim.
package converter
