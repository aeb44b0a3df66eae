// Package configs manages on-disk configuration for Totara.
//
// State is stored in TOML format under the user's config directory
// (os.UserConfigDir()/totara). The registry package builds its persisted
// document on top of SaveTOML/LoadTOML; SaveTOML writes atomically via a
// temp-file-then-rename so readers never observe a partial registry.
//
// Cross-process writers are not serialized: two totara invocations racing
// on the same registry file resolve as last-writer-wins.
package configs
