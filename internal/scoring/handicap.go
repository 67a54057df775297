package scoring

import "math"

// Defaults substituted for missing or malformed course figures.
const (
	DefaultSlope    = 113.0
	DefaultRating   = 72.0
	DefaultTotalPar = 72
)

// CourseHandicap converts a WHS handicap index into an integer course handicap
// for the given tees:
//
//	raw = index * (slope / 113) + (rating - totalPar)
//
// A nil index yields 0 regardless of the other inputs. Non-positive slope,
// rating, or total par fall back to the defaults above. Under the 95percent
// policy the raw value is scaled by 0.95 before rounding. Rounding is half
// away from zero (math.Round). For nine-hole games the rounded full-round
// handicap is halved and rounded again; the halving is applied to the rounded
// integer, not to the raw value.
//
// The differential policy computes the same as full here; the relative
// adjustment happens across the whole roster, see ApplyDifferential.
func CourseHandicap(index *float64, slope, rating float64, totalPar int, holes HolesMode, policy HandicapPolicy) int {
	if index == nil {
		return 0
	}
	if slope <= 0 || math.IsNaN(slope) || math.IsInf(slope, 0) {
		slope = DefaultSlope
	}
	if rating <= 0 || math.IsNaN(rating) || math.IsInf(rating, 0) {
		rating = DefaultRating
	}
	if totalPar <= 0 {
		totalPar = DefaultTotalPar
	}

	raw := *index*(slope/113.0) + (rating - float64(totalPar))
	if policy == HandicapNinetyFive {
		raw *= 0.95
	}

	ch := int(math.Round(raw))
	if holes == HolesFront9 || holes == HolesBack9 {
		ch = int(math.Round(float64(ch) / 2.0))
	}
	return ch
}

// ApplyDifferential shifts a roster's course handicaps so the lowest plays off
// zero, the standard "off the low man" adjustment. Input order is preserved.
// An empty slice returns nil.
func ApplyDifferential(handicaps []int) []int {
	if len(handicaps) == 0 {
		return nil
	}
	low := handicaps[0]
	for _, ch := range handicaps[1:] {
		if ch < low {
			low = ch
		}
	}
	out := make([]int, len(handicaps))
	for i, ch := range handicaps {
		out[i] = ch - low
	}
	return out
}

// StrokesReceived returns the handicap strokes a player gets on one hole.
// Strokes are allocated by stroke index: one stroke on each hole whose index
// is covered by the course handicap, a second above 18, a third above 36.
// Plus handicaps give a stroke back starting from the easiest hole.
func StrokesReceived(courseHandicap, strokeIndex int) int {
	switch {
	case courseHandicap >= strokeIndex+36:
		return 3
	case courseHandicap >= strokeIndex+18:
		return 2
	case courseHandicap >= strokeIndex:
		return 1
	case courseHandicap < 0 && -courseHandicap >= 19-strokeIndex:
		return -1
	default:
		return 0
	}
}
