// Package gitrepo provides the version-control side of a scan: cloning a
// repository into a temporary working directory and exposing its branches,
// commits, trees, and blobs to the scan engine.
//
// It is built on go-git, so no external git binary is required. Branch and
// commit trees are read directly from the object store rather than checked
// out, and the git blob hash serves as the engine's content identifier:
// byte-identical files share a hash repository-wide, which is what makes
// cross-commit deduplication work.
package gitrepo
