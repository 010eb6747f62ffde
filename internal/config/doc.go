// Package config builds the explicit configuration passed into every
// provisioning and launch step.
//
// The original scripts communicated through ambient process state: cache
// variables exported into the environment and an "activated" interpreter
// on PATH. This package replaces that with a single Config value computed
// up front; each step receives exactly the paths it needs and nothing is
// mutated on the current process.
//
// An optional appstrap.jsonc file in the project root overrides the
// defaults. The file is JSONC (JSON with comments), parsed the same way
// devcontainer.json files commonly are: comments stripped with
// github.com/tidwall/jsonc, then decoded with encoding/json.
package config
