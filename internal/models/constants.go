package models

// DefaultOrderIndex is the order index for new tasks (appended at the end)
const DefaultOrderIndex = 9999

// FallbackGroupRank is the sort rank for groups that carry neither a
// position nor a legacy rank; they sort after every ranked group.
const FallbackGroupRank = 1 << 30
