package utils

import "github.com/google/uuid"

// RID prefixes per entity type.
const (
	PrefixBranch       = "br"
	PrefixUser         = "usr"
	PrefixTable        = "tbl"
	PrefixCategory     = "cat"
	PrefixItem         = "itm"
	PrefixOrder        = "ord"
	PrefixNotification = "notif"
)

// GenerateRID builds a human-readable external identifier. UUID-based so it
// stays collision-free across process instances, unlike a per-process counter.
func GenerateRID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
