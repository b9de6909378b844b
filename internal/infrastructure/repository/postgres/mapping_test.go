package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/schedule"
)

func TestResultFromRowDecodesSets(t *testing.T) {
	row := matchResultTableModel{
		PublicID:       "r1",
		TournamentID:   "winter",
		DivisionID:     "oro",
		Player1ID:      "a",
		Player2ID:      "b",
		Sets:           []byte(`[{"player1":6,"player2":4},{"player1":null,"player2":3}]`),
		Player1Games:   6,
		Player2Games:   4,
		Player1SetsWon: 1,
	}

	got, err := resultFromRow(row)
	if err != nil {
		t.Fatalf("resultFromRow: %v", err)
	}
	if len(got.Sets) != 2 || !got.Sets[0].Valid() || got.Sets[1].Valid() {
		t.Fatalf("unexpected sets: %+v", got.Sets)
	}
	if *got.Sets[0].Player1 != 6 || got.Player1SetsWon != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestResultFromRowRejectsCorruptSets(t *testing.T) {
	if _, err := resultFromRow(matchResultTableModel{PublicID: "r1", Sets: []byte("{")}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestScheduledMatchFromRow(t *testing.T) {
	open := scheduledMatchFromRow(scheduledMatchTableModel{PublicID: "m1", Player1ID: "a", Player2Name: "Pending", Status: "pending"})
	if !open.IsOpen() || open.Status != schedule.StatusPending {
		t.Fatalf("expected open pending match, got %+v", open)
	}

	confirmed := scheduledMatchFromRow(scheduledMatchTableModel{
		PublicID:  "m2",
		Player1ID: "a",
		Player2ID: sql.NullString{String: "b", Valid: true},
		MatchDate: "2026-01-10",
		Status:    "CONFIRMED",
	})
	if confirmed.Player2ID != "b" || confirmed.Status != schedule.StatusConfirmed || confirmed.Date != "2026-01-10" {
		t.Fatalf("unexpected confirmed match: %+v", confirmed)
	}
}

func TestPlayerFromRow(t *testing.T) {
	got := playerFromRow(playerTableModel{
		PublicID:      "p1",
		Name:          "Ana",
		Role:          "player",
		DivisionID:    sql.NullString{String: "oro", Valid: true},
		TournamentIDs: pq.StringArray{"winter", "cup"},
	})
	if !got.PlaysIn("cup", "oro") || got.Role != player.RolePlayer {
		t.Fatalf("unexpected player: %+v", got)
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get player: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(errors.New("connection refused")) {
		t.Fatalf("unexpected not found for unrelated error")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "active pair index", err: fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: constraintActivePair}), want: true},
		{name: "other constraint", err: &pq.Error{Code: "23505", Constraint: "scheduled_matches_public_id_key"}},
		{name: "check violation", err: &pq.Error{Code: "23514", Constraint: constraintActivePair}},
		{name: "plain error", err: errors.New("connection reset")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err, constraintActivePair); got != tt.want {
				t.Fatalf("isUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}
