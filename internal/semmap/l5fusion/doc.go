// Package l5fusion owns Layer 5 (Fusion) of the semantic mapping model.
//
// Responsibilities: driving an external per-episode accumulator that fuses
// egocentric grids in the geocentric frame and re-egocentres the result.
// The accumulator owns all fused-map state; this package owns only the
// episode session that sequences calls into it.
// Key types: Accumulator, Session, GridSpec.
//
// Dependency rule: L5 may depend on L1-L4.
package l5fusion
