// Package scan is the content scanning and secret-detection engine.
//
// A Coordinator drives one run: it walks the tip of every branch and,
// optionally, the historical commits of the repository, and merges the
// per-tree results into a single Report. Trees come from a Source, the
// version-control provider abstraction; the engine itself performs no
// repository I/O beyond Source calls.
//
// Per-file work is split along the content/path boundary. Content-derived
// dimensions (content pattern matches, entropy secret candidates) are
// computed once per distinct blob and memoized in a BlobCache keyed by
// content identity, so a file that is byte-identical across thousands of
// commits is scanned exactly once. The path-derived filename match is cheap
// and computed per entry outside the cache.
//
// Branch and commit scans run concurrently up to a worker bound. Per-branch
// and per-commit failures are logged and skipped; per-file failures are
// skipped silently. Only cancellation and configuration-level failures abort
// a run, and a cancelled run yields no partial report.
package scan
