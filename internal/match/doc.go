// Package match compiles and applies the optional filename and content
// patterns of a scan run.
//
// Patterns are validated once at configuration time; a scan never sees an
// invalid pattern. Filename patterns are searched against a file's base name,
// content patterns against its full decoded text with all non-overlapping
// matches reported. Glob-style patterns (a bare `*` with no other regex
// metacharacters) are translated to their regex equivalent before compiling.
package match
