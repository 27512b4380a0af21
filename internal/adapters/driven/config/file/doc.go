// Package file provides file-based implementations of driven port interfaces.
//
// ConfigStore keeps site settings and builder defaults in
// ~/.pagecraft/config.toml and can watch the file for external edits.
package file
