// Package validator runs the whole compilation: contract validation,
// assembly, spread expansion, resolution, cycle and duplicate detection, and
// defect aggregation. Per-site and per-scope work is spread across a bounded
// worker pool; every result lands in a slot indexed by pre-order position
// so the output is identical for any number of workers.
package validator
