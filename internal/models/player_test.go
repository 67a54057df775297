package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/mkelwood/fairway-api/internal/scoring"
)

func TestScoreCard_JSON(t *testing.T) {
	var card ScoreCard
	// The "x" key and the zero value are dropped or coerced, not rejected.
	input := []byte(`{"1": 4, "2": "NR", "3": 0, "x": 5}`)
	if err := json.Unmarshal(input, &card); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if len(card) != 3 {
		t.Fatalf("Expected 3 holes, got %d", len(card))
	}
	if card[1] != 4 {
		t.Errorf("Expected 4 on hole 1, got %v", card[1])
	}
	if card[2] != scoring.NoReturn {
		t.Errorf("Expected NR on hole 2, got %v", card[2])
	}
	if card[3] != scoring.NoReturn {
		t.Errorf("Expected 0 to coerce to NR, got %v", card[3])
	}

	out, err := json.Marshal(card)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	var echoed ScoreCard
	if err := json.Unmarshal(out, &echoed); err != nil {
		t.Fatalf("Unmarshal of marshaled card returned error: %v", err)
	}
	if echoed[1] != 4 || echoed[2] != scoring.NoReturn {
		t.Errorf("Expected card to survive the round trip, got %v", echoed)
	}
}

func TestScoreCard_Scan(t *testing.T) {
	var card ScoreCard
	if err := card.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) returned error: %v", err)
	}
	if card == nil || len(card) != 0 {
		t.Errorf("Expected empty card for NULL scores, got %v", card)
	}

	if err := card.Scan([]byte(`{"7": 3}`)); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if card[7] != 3 {
		t.Errorf("Expected 3 on hole 7, got %v", card[7])
	}

	if err := card.Scan("not bytes"); err == nil {
		t.Error("Expected error scanning a non-byte value")
	}
}

func TestHoleValues_Scan(t *testing.T) {
	var v HoleValues
	if err := v.Scan([]byte(`[4,3,5]`)); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(v) != 3 || v[1] != 3 {
		t.Errorf("Expected [4 3 5], got %v", v)
	}

	if err := v.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) returned error: %v", err)
	}
	if len(v) != 0 {
		t.Errorf("Expected empty values for NULL, got %v", v)
	}
}

func TestPlayer_Round(t *testing.T) {
	group := 3
	p := &Player{
		ID:             uuid.New(),
		Name:           "Alice",
		CourseHandicap: 12,
		TeeGroup:       &group,
		Scores:         ScoreCard{1: 5, 2: scoring.NoReturn},
	}

	r := p.Round()
	if r.PlayerID != p.ID || r.Name != "Alice" || r.CourseHandicap != 12 {
		t.Errorf("Round lost player identity: %+v", r)
	}
	if r.TeeGroup != 3 {
		t.Errorf("Expected tee group 3, got %d", r.TeeGroup)
	}
	if r.Scores[1] != 5 || r.Scores[2] != scoring.NoReturn {
		t.Errorf("Round lost scores: %v", r.Scores)
	}

	// The round holds a copy, not the live card.
	r.Scores[1] = 9
	if p.Scores[1] != 5 {
		t.Errorf("Expected player card untouched, got %v", p.Scores[1])
	}

	p.TeeGroup = nil
	if got := p.Round().TeeGroup; got != scoring.NoTeeGroup {
		t.Errorf("Expected NoTeeGroup for a nil tee group, got %d", got)
	}
}
