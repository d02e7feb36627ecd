// Package diskusage computes du-style disk usage for a directory tree.
//
// A Walker enumerates the tree top-down on an explicit stack, consulting a
// LinkGuard before descending into symlinked directories. Analyze folds the
// per-entry block allocations reported by Probe into an Index, either in a
// single sequential pass or by probing leaves on a bounded worker pool and
// aggregating directories deepest-first afterwards. Both strategies produce
// the same Index for the same tree. Filter narrows an Index with whitelist,
// blacklist and size criteria.
//
// Sizes are allocated blocks times 512 bytes. Files linked more than once are
// counted once per path.
package diskusage
