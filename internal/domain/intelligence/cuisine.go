package intelligence

import (
	"fmt"
	"strings"

	"github.com/macromind/v1/internal/domain/nutrition"
)

// CuisineSeed carries the identity dimensions that keep cuisine selection
// stable for one user, one day, one intent, while still varying across
// days and members.
type CuisineSeed struct {
	UserID   string
	MemberID string
	IntentID string
	Day      string
}

const (
	fnvOffset32 uint32 = 0x811c9dc5
	fnvPrime32  uint32 = 0x01000193
)

// fnv1a32 is the 32-bit FNV-1a hash. Hand-rolled rather than hash/fnv so
// the selection stays a pure expression over strings, with no hasher
// state to misuse.
func fnv1a32(s string) uint32 {
	h := fnvOffset32
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime32
	}
	return h
}

// SelectCuisine deterministically picks one cuisine from the candidate
// list. The behavior-observed common cuisine, if present among the
// candidates, is moved to the front so it wins ties in the fingerprint.
// Returns false when no candidates survive normalization.
func SelectCuisine(candidates []string, behaviorCommon string, seed CuisineSeed) (string, bool) {
	list := nutrition.NormalizeCuisines(candidates)
	if len(list) == 0 {
		return "", false
	}

	common := strings.ToLower(strings.TrimSpace(behaviorCommon))
	if common != "" {
		for i, c := range list {
			if c == common && i != 0 {
				copy(list[1:i+1], list[:i])
				list[0] = common
				break
			}
		}
	}

	fingerprint := fnv1a32(strings.Join(list, ","))
	key := fmt.Sprintf("%s|%s|%s|%s|%d", seed.UserID, seed.MemberID, seed.IntentID, seed.Day, fingerprint)
	idx := int(fnv1a32(key) % uint32(len(list)))
	return list[idx], true
}
