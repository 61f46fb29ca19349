// Package config loads and validates the TOML configuration controlling
// bindery builds.
//
// Configuration covers the campaign data directory, the compendium pack
// output directory, the provenance values stamped onto built documents, the
// per-pack source definitions, and ambient concerns (logging, ntfy
// notifications). Load applies defaults, expands home-relative paths, and
// validates the result so downstream packages never see a half-formed
// configuration.
package config
