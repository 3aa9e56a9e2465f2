// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML settings in ~/.papersum/config.toml
//   - PromptStore: editable prompt templates in ~/.papersum/prompts
package file
