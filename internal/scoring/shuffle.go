package scoring

import (
	"math/rand"

	"github.com/google/uuid"
)

// AssignTeeGroups draws a random tee sheet: the player ids are shuffled with a
// Fisher-Yates permutation seeded by seed, then split into consecutive groups
// of groupSize (the last group takes the remainder). The same seed always
// produces the same draw, which is what makes the draw testable and lets a
// host re-run an interrupted reshuffle with an identical outcome.
func AssignTeeGroups(ids []uuid.UUID, groupSize int, seed int64) [][]uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	if groupSize < 1 {
		groupSize = 2
	}

	shuffled := make([]uuid.UUID, len(ids))
	copy(shuffled, ids)
	rng := rand.New(rand.NewSource(seed))
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	var groups [][]uuid.UUID
	for start := 0; start < len(shuffled); start += groupSize {
		end := start + groupSize
		if end > len(shuffled) {
			end = len(shuffled)
		}
		groups = append(groups, shuffled[start:end])
	}
	return groups
}
