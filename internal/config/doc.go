// Package config loads, normalizes, and validates nbexport configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NBEXPORT_PROJECT_ROOT. The Config type centralizes every knob the exporter
// and CLI need so the notebooks and reports roots, the converter invocation,
// and discovery filters are resolved in one pass.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
