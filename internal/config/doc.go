// Package config loads cowork's configuration.
//
// Configuration lives in ~/.config/cowork/config.toml and identifies the
// CoSoft instance to talk to: the API base URL plus the coworking-space and
// room-category identifiers that every reservation endpoint embeds in its
// path. All three have defaults for the Hub612 instance, so a fresh install
// works without a config file at all.
//
// Precedence, lowest to highest: built-in defaults, config file, environment
// variables (COSOFT_API_BASE_URL, COSOFT_SPACE_ID, COSOFT_CATEGORY_ID). A
// .env file in the working directory is loaded into the environment first,
// mirroring how the hosted web frontend is configured.
//
// The config also locates two files owned by other packages: the auth token
// store (auth_path, default ~/.config/cowork/auth.json) and the wire-level
// debug log (debug_log, default ~/.local/state/cowork/debug.log).
package config
