// Package config loads, validates, and normalizes tunetrace configuration.
//
// Configuration is TOML with repository defaults applied first, so an empty or
// missing file yields a runnable setup. All path fields are expanded (~ and
// relative segments) before validation. Use Load to obtain a ready config and
// CreateSample to write the annotated starter file.
package config
