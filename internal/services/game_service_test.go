package services

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/mkelwood/fairway-api/internal/errors"
	"github.com/mkelwood/fairway-api/internal/models"
	"github.com/mkelwood/fairway-api/internal/scoring"
)

func appErrorCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected *AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestCreateGame(t *testing.T) {
	repos := newFakeRepos()
	svc := newGameService(repos)

	game, err := svc.CreateGame(standardCard(&models.Game{CourseName: "Kelwood Park"}), "secret-key")
	if err != nil {
		t.Fatalf("CreateGame returned error: %v", err)
	}

	if len(game.Code) != codeLength {
		t.Errorf("Expected a %d character join code, got %q", codeLength, game.Code)
	}
	for _, c := range game.Code {
		if !strings.ContainsRune(codeAlphabet, c) {
			t.Errorf("Join code %q contains %q outside the alphabet", game.Code, c)
		}
	}

	// Missing numeric settings and enums pick up the defaults.
	if game.Slope != scoring.DefaultSlope || game.Rating != scoring.DefaultRating || game.TotalPar != scoring.DefaultTotalPar {
		t.Errorf("Expected default course figures, got slope=%v rating=%v par=%d", game.Slope, game.Rating, game.TotalPar)
	}
	if game.GameMode != scoring.GameModeStroke || game.TeamMode != scoring.TeamModeSingles {
		t.Errorf("Expected stroke/singles defaults, got %s/%s", game.GameMode, game.TeamMode)
	}
	if game.HostKeyHash == "" || game.HostKeyHash == "secret-key" {
		t.Error("Expected the host key to be stored hashed")
	}

	stored, err := svc.GetGameByCode(game.Code)
	if err != nil {
		t.Fatalf("GetGameByCode returned error: %v", err)
	}
	if stored.ID != game.ID {
		t.Errorf("Expected stored game %s, got %s", game.ID, stored.ID)
	}
}

func TestCreateGame_Invalid(t *testing.T) {
	repos := newFakeRepos()
	svc := newGameService(repos)

	_, err := svc.CreateGame(&models.Game{}, "secret-key")
	if code := appErrorCode(t, err); code != apperrors.ErrCodeValidationError {
		t.Errorf("Expected validation error for an empty card, got %s", code)
	}

	_, err = svc.CreateGame(standardCard(&models.Game{}), "")
	if code := appErrorCode(t, err); code != apperrors.ErrCodeInvalidInput {
		t.Errorf("Expected invalid input for a missing host key, got %s", code)
	}
}

func TestGetGameByCode_Normalizes(t *testing.T) {
	repos := newFakeRepos()
	svc := newGameService(repos)

	game, err := svc.CreateGame(standardCard(&models.Game{}), "key")
	if err != nil {
		t.Fatalf("CreateGame returned error: %v", err)
	}

	found, err := svc.GetGameByCode("  " + strings.ToLower(game.Code) + " ")
	if err != nil {
		t.Fatalf("Expected lower-cased padded code to resolve, got %v", err)
	}
	if found.ID != game.ID {
		t.Errorf("Expected game %s, got %s", game.ID, found.ID)
	}

	_, err = svc.GetGameByCode("NOSUCH")
	if code := appErrorCode(t, err); code != apperrors.ErrCodeNotFound {
		t.Errorf("Expected not found, got %s", code)
	}
}

func TestJoinGame(t *testing.T) {
	repos := newFakeRepos()
	svc := newGameService(repos)

	game, err := svc.CreateGame(standardCard(&models.Game{Slope: 135, Rating: 71.5, TotalPar: 72}), "key")
	if err != nil {
		t.Fatalf("CreateGame returned error: %v", err)
	}

	player, _, err := svc.JoinGame(game.Code, " Alice ", "18.4", false)
	if err != nil {
		t.Fatalf("JoinGame returned error: %v", err)
	}
	if player.Name != "Alice" {
		t.Errorf("Expected trimmed name Alice, got %q", player.Name)
	}
	if player.CourseHandicap != 21 {
		t.Errorf("Expected course handicap 21, got %d", player.CourseHandicap)
	}

	// Joining again under the same name merges onto the record.
	again, _, err := svc.JoinGame(game.Code, "alice", "10.0", false)
	if err != nil {
		t.Fatalf("Rejoin returned error: %v", err)
	}
	if again.ID != player.ID {
		t.Errorf("Expected rejoin to reuse player %s, got %s", player.ID, again.ID)
	}
	if again.CourseHandicap == player.CourseHandicap {
		t.Error("Expected rejoin to pick up the new handicap")
	}

	roster, err := svc.GetPlayers(game.Code)
	if err != nil {
		t.Fatalf("GetPlayers returned error: %v", err)
	}
	if len(roster) != 1 {
		t.Errorf("Expected 1 player after rejoin, got %d", len(roster))
	}
}

func TestJoinGame_Validation(t *testing.T) {
	repos := newFakeRepos()
	svc := newGameService(repos)

	game, _ := svc.CreateGame(standardCard(&models.Game{}), "key")

	_, _, err := svc.JoinGame(game.Code, "   ", "", false)
	if code := appErrorCode(t, err); code != apperrors.ErrCodeInvalidInput {
		t.Errorf("Expected invalid input for a blank name, got %s", code)
	}

	_, _, err = svc.JoinGame("NOSUCH", "Alice", "", false)
	if code := appErrorCode(t, err); code != apperrors.ErrCodeNotFound {
		t.Errorf("Expected not found for an unknown code, got %s", code)
	}

	// A malformed handicap index means no handicap, not a rejection.
	player, _, err := svc.JoinGame(game.Code, "Bob", "scratch-ish", false)
	if err != nil {
		t.Fatalf("JoinGame returned error: %v", err)
	}
	if player.HandicapIndex != nil || player.CourseHandicap != 0 {
		t.Errorf("Expected no handicap for malformed input, got %v / %d", player.HandicapIndex, player.CourseHandicap)
	}
}

func TestJoinGame_DifferentialShiftsRoster(t *testing.T) {
	repos := newFakeRepos()
	svc := newGameService(repos)

	game, err := svc.CreateGame(standardCard(&models.Game{
		HandicapPolicy: scoring.HandicapDifferential,
	}), "key")
	if err != nil {
		t.Fatalf("CreateGame returned error: %v", err)
	}

	alice, _, err := svc.JoinGame(game.Code, "Alice", "18", false)
	if err != nil {
		t.Fatalf("JoinGame returned error: %v", err)
	}
	// Alone, the low man plays off zero.
	if alice.CourseHandicap != 0 {
		t.Errorf("Expected 0 for a lone differential player, got %d", alice.CourseHandicap)
	}

	// A lower player joining rebases the roster on them.
	bob, _, err := svc.JoinGame(game.Code, "Bob", "10", false)
	if err != nil {
		t.Fatalf("JoinGame returned error: %v", err)
	}
	if bob.CourseHandicap != 0 {
		t.Errorf("Expected the new low man on 0, got %d", bob.CourseHandicap)
	}

	roster, _ := svc.GetPlayers(game.Code)
	byName := map[string]int{}
	for _, p := range roster {
		byName[p.Name] = p.CourseHandicap
	}
	if byName["Alice"] != 8 {
		t.Errorf("Expected Alice shifted to 8, got %d", byName["Alice"])
	}
}

func TestClaimHost(t *testing.T) {
	repos := newFakeRepos()
	svc := newGameService(repos)

	game, _ := svc.CreateGame(standardCard(&models.Game{}), "correct horse")

	claimed, err := svc.ClaimHost(game.Code, "correct horse")
	if err != nil {
		t.Fatalf("ClaimHost returned error: %v", err)
	}
	if claimed.ID != game.ID {
		t.Errorf("Expected game %s, got %s", game.ID, claimed.ID)
	}

	_, err = svc.ClaimHost(game.Code, "battery staple")
	if code := appErrorCode(t, err); code != apperrors.ErrCodeForbidden {
		t.Errorf("Expected forbidden for a wrong host key, got %s", code)
	}
}

func TestUpdateSettings_RecomputesHandicaps(t *testing.T) {
	repos := newFakeRepos()
	svc := newGameService(repos)

	game, err := svc.CreateGame(standardCard(&models.Game{Slope: 113, Rating: 72, TotalPar: 72}), "key")
	if err != nil {
		t.Fatalf("CreateGame returned error: %v", err)
	}

	alice, _, err := svc.JoinGame(game.Code, "Alice", "18.4", false)
	if err != nil {
		t.Fatalf("JoinGame returned error: %v", err)
	}
	if alice.CourseHandicap != 18 {
		t.Fatalf("Expected 18 on neutral tees, got %d", alice.CourseHandicap)
	}

	// Record a score, then steepen the tees.
	if err := repos.Player.UpdateScore(alice.ID, 1, 5); err != nil {
		t.Fatalf("UpdateScore returned error: %v", err)
	}

	updated := standardCard(&models.Game{Slope: 135, Rating: 71.5, TotalPar: 72})
	_, players, err := svc.UpdateSettings(game.ID, updated)
	if err != nil {
		t.Fatalf("UpdateSettings returned error: %v", err)
	}

	if len(players) != 1 {
		t.Fatalf("Expected 1 player back, got %d", len(players))
	}
	if players[0].CourseHandicap != 21 {
		t.Errorf("Expected recomputed handicap 21, got %d", players[0].CourseHandicap)
	}
	// Recorded results are never touched by a settings change.
	if players[0].Scores[1] != 5 {
		t.Errorf("Expected hole 1 score to survive, got %v", players[0].Scores[1])
	}

	stored, _ := svc.GetGameByCode(game.Code)
	if stored.Slope != 135 {
		t.Errorf("Expected stored slope 135, got %v", stored.Slope)
	}
	if stored.Code != game.Code {
		t.Errorf("Expected the join code to be immutable, got %q", stored.Code)
	}
}

func TestUpdateSettings_Invalid(t *testing.T) {
	repos := newFakeRepos()
	svc := newGameService(repos)

	game, _ := svc.CreateGame(standardCard(&models.Game{}), "key")

	bad := standardCard(&models.Game{})
	bad.StrokeIndex[0] = bad.StrokeIndex[1]
	_, _, err := svc.UpdateSettings(game.ID, bad)
	if code := appErrorCode(t, err); code != apperrors.ErrCodeValidationError {
		t.Errorf("Expected validation error, got %s", code)
	}
}

func TestReshuffleGroups(t *testing.T) {
	repos := newFakeRepos()
	svc := newGameService(repos)

	game, _ := svc.CreateGame(standardCard(&models.Game{}), "key")
	for _, name := range []string{"Alice", "Bob", "Carol", "Dave", "Eve"} {
		if _, _, err := svc.JoinGame(game.Code, name, "", false); err != nil {
			t.Fatalf("JoinGame(%s) returned error: %v", name, err)
		}
	}

	players, err := svc.ReshuffleGroups(game.ID, 2, 42)
	if err != nil {
		t.Fatalf("ReshuffleGroups returned error: %v", err)
	}

	counts := map[int]int{}
	for _, p := range players {
		if p.TeeGroup == nil {
			t.Fatalf("Expected every player grouped, %s has none", p.Name)
		}
		counts[*p.TeeGroup]++
	}
	if len(counts) != 3 {
		t.Errorf("Expected 3 groups of 5 players in twos, got %d", len(counts))
	}
	if counts[1] != 2 || counts[2] != 2 || counts[3] != 1 {
		t.Errorf("Expected groups of 2/2/1, got %v", counts)
	}

	// Same seed, same draw.
	first := map[string]int{}
	for _, p := range players {
		first[p.Name] = *p.TeeGroup
	}
	players, err = svc.ReshuffleGroups(game.ID, 2, 42)
	if err != nil {
		t.Fatalf("ReshuffleGroups returned error: %v", err)
	}
	for _, p := range players {
		if first[p.Name] != *p.TeeGroup {
			t.Errorf("Expected %s to stay in group %d for the same seed, got %d", p.Name, first[p.Name], *p.TeeGroup)
		}
	}
}
