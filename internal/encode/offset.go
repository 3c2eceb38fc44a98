package encode

// OwnershipCount is 2^6: one bit per non-lion piece, set iff that
// piece is owned by Gote.
const OwnershipCount = 64

// MaxAlias bounds the number of distinct PosCode values PosCodeAliases
// can return for a single position.
const MaxAlias = 16

// Offset computes the byte offset of pc within the flat tablebase.
// It is a pure, branch-free function: cohort regions sit contiguously
// in the file, and within a cohort (lionpos, ownership) stride by the
// cohort's size while map is the intra-stride offset. Lionpos strides
// outer of ownership, so all entries for one lion placement form one
// contiguous block, matching the builder's natural sweep order (fix
// the lions, vary the rest). pc.LionPos must be
// below LionPosCount: codes at or past it name positions the file
// holds no entry for, and EncodePosCheck screens them out.
func Offset(pc PosCode) uint64 {
	cs := cohortSizeTable[pc.Cohort]
	return cs.Offset + cs.Size*(uint64(pc.LionPos)*OwnershipCount+uint64(pc.Ownership)) + pc.Map
}
