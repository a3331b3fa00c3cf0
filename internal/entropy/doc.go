// Package entropy provides statistical secret detection via Shannon entropy.
//
// Content is split into tokens on runs of whitespace, colons, and equals
// signs. A token is flagged as a secret candidate when it is longer than 15
// characters, drawn entirely from the Base64 alphabet, and its per-character
// Shannon entropy exceeds 4.3 bits. The length and threshold constants are
// empirical and preserved for compatibility with prior scan results; a
// candidate is a statistical signal, not a verified credential.
//
// All functions are pure and safe for concurrent use.
package entropy
