// Package tui holds the interactive pieces of bv: terminal detection, huh
// prompts used by auto-add, and the spinner shown while git runs.
package tui
