// GitHuntr is a CLI for auditing a git repository for leaked secrets.
//
// It clones the repository into a temporary directory, scans every branch
// and, optionally, every historical commit for filename matches, content
// matches, and high-entropy secret candidates, and emits a JSON report.
//
// Usage:
//
//	githuntr scan -r REPO_URL -f ".*token.*"        # filename search
//	githuntr scan -r REPO_URL -c "api_key" -e       # content + entropy
//	githuntr scan -r REPO_URL --history --max-commits 100
//
// Secrets removed in a later commit remain visible in history; the history
// scan is what finds them.
package main
