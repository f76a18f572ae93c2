// Package config loads server settings from an optional config.yaml and
// BRANDKIT_-prefixed environment variables, applies defaults and validates
// the result. Settings are grouped by concern: server, llm, generation,
// store and auth.
package config
