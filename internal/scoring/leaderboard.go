package scoring

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// entity is a leaderboard competitor: a single player, or the players sharing
// a tee group in pairs play. nets holds the entity's effective net score for
// every hole where at least one member returned a result.
type entity struct {
	name     string
	ids      []uuid.UUID
	teeGroup int
	nets     map[int]int
	thru     int
}

// ComputeLeaderboard derives the ranked leaderboard from the current roster.
// It is pure: same inputs, same output, nothing persisted.
//
// In pairs mode players sharing a tee group form one better-ball side; players
// without a group are left off the board entirely. Per hole a side scores the
// lowest net among members who returned a result, and the hole counts as
// played if any member returned one.
//
// Ordering is by score (ascending for stroke and match, descending for
// stableford and skins), then ascending tee group with ungrouped entities
// last, then name, so a board with no scores yet is still stably ordered.
func ComputeLeaderboard(rounds []PlayerRound, cfg HoleConfig, mode GameMode, team TeamMode) []Entry {
	entities := buildEntities(rounds, cfg, team)

	scores := make([]int, len(entities))
	switch mode {
	case GameModeStableford:
		for i, e := range entities {
			scores[i] = stablefordTotal(e, cfg)
		}
	case GameModeMatch:
		scores = matchScores(entities)
	case GameModeSkins:
		scores = skinsScores(entities, cfg)
	default: // stroke play
		for i, e := range entities {
			scores[i] = strokeTotal(e, cfg)
		}
	}

	entries := make([]Entry, len(entities))
	for i, e := range entities {
		entries[i] = Entry{
			Name:      e.name,
			PlayerIDs: e.ids,
			TeeGroup:  e.teeGroup,
			Score:     scores[i],
			Thru:      e.thru,
		}
	}

	higherBetter := mode == GameModeStableford || mode == GameModeSkins
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			if higherBetter {
				return a.Score > b.Score
			}
			return a.Score < b.Score
		}
		if a.TeeGroup != b.TeeGroup {
			if a.TeeGroup == NoTeeGroup {
				return false
			}
			if b.TeeGroup == NoTeeGroup {
				return true
			}
			return a.TeeGroup < b.TeeGroup
		}
		return a.Name < b.Name
	})
	return entries
}

func buildEntities(rounds []PlayerRound, cfg HoleConfig, team TeamMode) []*entity {
	var entities []*entity

	if team == TeamModePairs {
		byGroup := make(map[int][]*PlayerRound)
		var groups []int
		for i := range rounds {
			p := &rounds[i]
			if p.TeeGroup == NoTeeGroup {
				continue
			}
			if _, seen := byGroup[p.TeeGroup]; !seen {
				groups = append(groups, p.TeeGroup)
			}
			byGroup[p.TeeGroup] = append(byGroup[p.TeeGroup], p)
		}
		sort.Ints(groups)
		for _, g := range groups {
			entities = append(entities, newEntity(byGroup[g], g, cfg))
		}
		return entities
	}

	for i := range rounds {
		p := &rounds[i]
		entities = append(entities, newEntity([]*PlayerRound{p}, p.TeeGroup, cfg))
	}
	return entities
}

func newEntity(members []*PlayerRound, teeGroup int, cfg HoleConfig) *entity {
	e := &entity{
		teeGroup: teeGroup,
		nets:     make(map[int]int),
	}
	var names []string
	for _, m := range members {
		names = append(names, m.Name)
		e.ids = append(e.ids, m.PlayerID)
	}
	e.name = strings.Join(names, " / ")

	for _, h := range cfg {
		best, recorded := 0, false
		for _, m := range members {
			gross, ok := m.Scores[h.Number]
			if !ok || !gross.Recorded() {
				continue
			}
			net := int(NetScore(gross, StrokesReceived(m.CourseHandicap, h.StrokeIndex)))
			if !recorded || net < best {
				best, recorded = net, true
			}
		}
		if recorded {
			e.nets[h.Number] = best
			if h.Number > e.thru {
				e.thru = h.Number
			}
		}
	}
	return e
}

// strokeTotal is cumulative net score relative to par over recorded holes.
func strokeTotal(e *entity, cfg HoleConfig) int {
	total := 0
	for _, h := range cfg {
		if net, ok := e.nets[h.Number]; ok {
			total += net - h.Par
		}
	}
	return total
}

func stablefordTotal(e *entity, cfg HoleConfig) int {
	total := 0
	for _, h := range cfg {
		net, ok := e.nets[h.Number]
		if !ok {
			continue
		}
		points := h.Par - net + 2
		if points < 0 {
			points = 0
		}
		total += points
	}
	return total
}

// matchScores tallies round-robin match play: on each hole both sides have
// returned, the lower net takes the hole. An entity's score is holes lost
// minus holes won across all opponents, so lower is better and level is 0.
func matchScores(entities []*entity) []int {
	scores := make([]int, len(entities))
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			for hole, a := range entities[i].nets {
				b, ok := entities[j].nets[hole]
				if !ok {
					continue
				}
				switch {
				case a < b:
					scores[i]--
					scores[j]++
				case b < a:
					scores[j]--
					scores[i]++
				}
			}
		}
	}
	return scores
}

// skinsScores settles holes in course order, one skin per hole plus any
// carried pot. A hole settles only once every entity has returned a result on
// it; the outright lowest net takes the pot, a tie carries it forward. The
// first unsettled hole stops settlement so a skin is never awarded while a
// group is still out on the hole.
func skinsScores(entities []*entity, cfg HoleConfig) []int {
	scores := make([]int, len(entities))
	if len(entities) == 0 {
		return scores
	}

	carry := 0
	for _, h := range cfg {
		best, winner, tied := 0, -1, false
		settled := true
		for i, e := range entities {
			net, ok := e.nets[h.Number]
			if !ok {
				settled = false
				break
			}
			switch {
			case winner == -1 || net < best:
				best, winner, tied = net, i, false
			case net == best:
				tied = true
			}
		}
		if !settled {
			break
		}
		if tied {
			carry++
			continue
		}
		scores[winner] += 1 + carry
		carry = 0
	}
	return scores
}
