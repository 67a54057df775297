package scoring

// NetScore adjusts a gross hole result by the strokes received on that hole.
// NoReturn passes through unchanged.
func NetScore(gross HoleResult, strokesReceived int) HoleResult {
	if !gross.Recorded() {
		return NoReturn
	}
	return HoleResult(int(gross) - strokesReceived)
}

// StablefordPoints awards points for one hole: net par is worth 2, each stroke
// better one more, and a net double bogey or worse scores nothing. A hole with
// no returned score is worth 0, which is why Stableford tolerates picking up.
func StablefordPoints(gross HoleResult, par, strokesReceived int) int {
	if !gross.Recorded() {
		return 0
	}
	points := par - int(NetScore(gross, strokesReceived)) + 2
	if points < 0 {
		return 0
	}
	return points
}
