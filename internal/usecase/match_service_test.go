package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/matchresult"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/schedule"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/memory"
	schedulemock "github.com/riskibarqy/league-standings/internal/mocks/domain/schedule"
	idgen "github.com/riskibarqy/league-standings/internal/platform/id"
	"github.com/stretchr/testify/mock"
)

func newMatchServiceFixture() (*MatchService, *stubResultRepository, *stubScheduleRepository) {
	tournaments := &stubTournamentRepository{items: testTournaments()}
	players := &stubPlayerRepository{items: []player.Player{
		testPlayer("p-ana", "Ana", "oro", testTournamentID),
		testPlayer("p-bruno", "Bruno", "oro", testTournamentID),
		testPlayer("p-carla", "Carla", "oro", testTournamentID),
		testPlayer("p-dani", "Dani", "plata", testTournamentID),
	}}
	results := &stubResultRepository{}
	scheduled := &stubScheduleRepository{}

	service := NewMatchService(tournaments, players, results, scheduled, idgen.NewSequence("id-1", "id-2", "id-3", "id-4"), nil)
	service.now = func() time.Time { return time.Date(2026, time.January, 5, 20, 0, 0, 0, time.UTC) }
	return service, results, scheduled
}

func TestMatchService_RecordResult_DerivesTotalsAndClearsSchedule(t *testing.T) {
	t.Parallel()

	service, results, scheduled := newMatchServiceFixture()
	scheduled.items = []schedule.Match{
		{ID: "m1", TournamentID: testTournamentID, DivisionID: "oro", Player1ID: "p-bruno", Player2ID: "p-ana", Status: schedule.StatusConfirmed},
		{ID: "m2", TournamentID: testTournamentID, DivisionID: "oro", Player1ID: "p-ana", Player2ID: "p-carla", Status: schedule.StatusConfirmed},
		{ID: "m3", TournamentID: "ppc-cup", DivisionID: "oro", Player1ID: "p-ana", Player2ID: "p-bruno", Status: schedule.StatusConfirmed},
	}

	got, err := service.RecordResult(context.Background(), RecordResultInput{
		TournamentID: testTournamentID,
		DivisionID:   "oro",
		Player1ID:    "p-ana",
		Player2ID:    "p-bruno",
		Sets: []matchresult.SetScore{
			matchresult.NewSet(6, 4),
			matchresult.NewSet(3, 6),
			matchresult.NewSet(6, 2),
			{Player1: nil, Player2: nil},
		},
		HadPint: true,
	})
	if err != nil {
		t.Fatalf("RecordResult error: %v", err)
	}

	if got.ID != "id-1" || got.Player1Name != "Ana" || got.Player2Name != "Bruno" {
		t.Fatalf("unexpected identity fields: %+v", got)
	}
	if got.Player1Games != 15 || got.Player2Games != 12 || got.Player1SetsWon != 2 || got.Player2SetsWon != 1 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if got.PintCount != 1 {
		t.Fatalf("expected pint count to default to 1, got %d", got.PintCount)
	}
	if len(results.items) != 1 {
		t.Fatalf("expected result to be appended, got %d", len(results.items))
	}

	if len(scheduled.items) != 2 {
		t.Fatalf("expected only the oro ana/bruno booking removed, got %+v", scheduled.items)
	}
	for _, m := range scheduled.items {
		if m.ID == "m1" {
			t.Fatalf("booking m1 should have been removed")
		}
	}
}

func TestMatchService_RecordResult_ValidationLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input RecordResultInput
		want  error
	}{
		{
			name:  "missing player",
			input: RecordResultInput{TournamentID: testTournamentID, DivisionID: "oro", Player1ID: "p-ana", Sets: []matchresult.SetScore{matchresult.NewSet(6, 0)}},
			want:  ErrInvalidInput,
		},
		{
			name:  "same player twice",
			input: RecordResultInput{TournamentID: testTournamentID, DivisionID: "oro", Player1ID: "p-ana", Player2ID: "p-ana", Sets: []matchresult.SetScore{matchresult.NewSet(6, 0)}},
			want:  ErrInvalidInput,
		},
		{
			name: "no valid sets",
			input: RecordResultInput{TournamentID: testTournamentID, DivisionID: "oro", Player1ID: "p-ana", Player2ID: "p-bruno", Sets: []matchresult.SetScore{
				{Player1: intPtr(6)},
			}},
			want: matchresult.ErrNoValidSets,
		},
		{
			name:  "unknown division",
			input: RecordResultInput{TournamentID: testTournamentID, DivisionID: "diamante", Player1ID: "p-ana", Player2ID: "p-bruno", Sets: []matchresult.SetScore{matchresult.NewSet(6, 0)}},
			want:  ErrNotFound,
		},
		{
			name:  "unknown player",
			input: RecordResultInput{TournamentID: testTournamentID, DivisionID: "oro", Player1ID: "p-ana", Player2ID: "p-ghost", Sets: []matchresult.SetScore{matchresult.NewSet(6, 0)}},
			want:  ErrInvalidInput,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			service, results, scheduled := newMatchServiceFixture()
			scheduled.items = []schedule.Match{
				{ID: "m1", TournamentID: testTournamentID, DivisionID: "oro", Player1ID: "p-ana", Player2ID: "p-bruno", Status: schedule.StatusConfirmed},
			}

			_, err := service.RecordResult(context.Background(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(results.items) != 0 || len(scheduled.items) != 1 {
				t.Fatalf("state mutated on invalid input: results=%d scheduled=%d", len(results.items), len(scheduled.items))
			}
		})
	}
}

func TestMatchService_RecordResult_AppendFailureKeepsSchedule(t *testing.T) {
	t.Parallel()

	service, results, scheduled := newMatchServiceFixture()
	results.appendErr = errors.New("disk full")
	scheduled.items = []schedule.Match{
		{ID: "m1", TournamentID: testTournamentID, DivisionID: "oro", Player1ID: "p-ana", Player2ID: "p-bruno", Status: schedule.StatusConfirmed},
	}

	_, err := service.RecordResult(context.Background(), RecordResultInput{
		TournamentID: testTournamentID,
		DivisionID:   "oro",
		Player1ID:    "p-ana",
		Player2ID:    "p-bruno",
		Sets:         []matchresult.SetScore{matchresult.NewSet(6, 1)},
	})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected append error, got %v", err)
	}
	if len(scheduled.items) != 1 {
		t.Fatalf("schedule should be untouched when append fails")
	}
}

func TestMatchService_RecordResult_CleanupFailureKeepsResult(t *testing.T) {
	t.Parallel()

	service, results, scheduled := newMatchServiceFixture()
	scheduled.removeErr = errors.New("schedule blob unavailable")

	got, err := service.RecordResult(context.Background(), RecordResultInput{
		TournamentID: testTournamentID,
		DivisionID:   "oro",
		Player1ID:    "p-ana",
		Player2ID:    "p-bruno",
		Sets:         []matchresult.SetScore{matchresult.NewSet(6, 1)},
	})
	if err != nil {
		t.Fatalf("expected stored result despite cleanup failure, got %v", err)
	}
	if got.ID != "id-1" || len(results.items) != 1 {
		t.Fatalf("expected result id-1 to be stored once, got %+v (stored=%d)", got, len(results.items))
	}
}

func TestMatchService_ScheduleMatch(t *testing.T) {
	t.Parallel()

	service, _, scheduled := newMatchServiceFixture()
	ctx := context.Background()

	open, err := service.ScheduleMatch(ctx, ScheduleMatchInput{
		TournamentID: testTournamentID,
		DivisionID:   "oro",
		Player1ID:    "p-ana",
		Location:     "Club Norte",
		Date:         "2026-01-10",
		TimeSlot:     "18:00",
	})
	if err != nil {
		t.Fatalf("schedule open match: %v", err)
	}
	if open.Status != schedule.StatusPending || open.Player2ID != "" || open.Player2Name != schedule.PendingPlaceholder {
		t.Fatalf("unexpected open match: %+v", open)
	}

	booked, err := service.ScheduleMatch(ctx, ScheduleMatchInput{
		TournamentID: testTournamentID,
		DivisionID:   "oro",
		Player1ID:    "p-ana",
		Player2ID:    "p-bruno",
		Location:     "Club Sur",
		Date:         "2026-01-11",
		TimeSlot:     "19:00",
	})
	if err != nil {
		t.Fatalf("schedule confirmed match: %v", err)
	}
	if booked.Status != schedule.StatusConfirmed || booked.Player2Name != "Bruno" {
		t.Fatalf("unexpected confirmed match: %+v", booked)
	}

	_, err = service.ScheduleMatch(ctx, ScheduleMatchInput{
		TournamentID: testTournamentID,
		DivisionID:   "oro",
		Player1ID:    "p-bruno",
		Player2ID:    "p-ana",
		Location:     "Club Sur",
		Date:         "2026-01-12",
		TimeSlot:     "19:00",
	})
	if !errors.Is(err, ErrDuplicateMatch) {
		t.Fatalf("expected ErrDuplicateMatch for reversed pair, got %v", err)
	}
	if len(scheduled.items) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(scheduled.items))
	}
}

func TestMatchService_ScheduleMatch_RequiresFields(t *testing.T) {
	t.Parallel()

	service, _, scheduled := newMatchServiceFixture()

	_, err := service.ScheduleMatch(context.Background(), ScheduleMatchInput{
		TournamentID: testTournamentID,
		DivisionID:   "oro",
		Player1ID:    "p-ana",
		Date:         "2026-01-10",
		TimeSlot:     "18:00",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(scheduled.items) != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestMatchService_JoinPendingMatch(t *testing.T) {
	t.Parallel()

	service, _, scheduled := newMatchServiceFixture()
	ctx := context.Background()
	scheduled.items = []schedule.Match{
		{ID: "m-open", TournamentID: testTournamentID, DivisionID: "oro", Player1ID: "p-ana", Player1Name: "Ana", Player2Name: schedule.PendingPlaceholder, Location: "Club Norte", Date: "2026-01-10", TimeSlot: "18:00", Status: schedule.StatusPending},
	}

	if _, err := service.JoinPendingMatch(ctx, "m-open", "p-ana"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected creator join to be rejected, got %v", err)
	}
	if _, err := service.JoinPendingMatch(ctx, "m-open", "p-dani"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected player of another division to be rejected, got %v", err)
	}

	joined, err := service.JoinPendingMatch(ctx, "m-open", "p-carla")
	if err != nil {
		t.Fatalf("JoinPendingMatch error: %v", err)
	}
	if joined.Status != schedule.StatusConfirmed || joined.Player2ID != "p-carla" || joined.Player2Name != "Carla" {
		t.Fatalf("unexpected joined match: %+v", joined)
	}

	if _, err := service.JoinPendingMatch(ctx, "m-open", "p-bruno"); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second join, got %v", err)
	}
	if _, err := service.JoinPendingMatch(ctx, "missing", "p-bruno"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchService_JoinPendingMatch_RejectsBookedPair(t *testing.T) {
	t.Parallel()

	service, _, scheduled := newMatchServiceFixture()
	scheduled.items = []schedule.Match{
		{ID: "m-booked", TournamentID: testTournamentID, DivisionID: "oro", Player1ID: "p-carla", Player1Name: "Carla", Player2ID: "p-ana", Player2Name: "Ana", Status: schedule.StatusConfirmed},
		{ID: "m-open", TournamentID: testTournamentID, DivisionID: "oro", Player1ID: "p-ana", Player1Name: "Ana", Player2Name: schedule.PendingPlaceholder, Status: schedule.StatusPending},
	}

	_, err := service.JoinPendingMatch(context.Background(), "m-open", "p-carla")
	if !errors.Is(err, ErrDuplicateMatch) {
		t.Fatalf("expected ErrDuplicateMatch, got %v", err)
	}
	if scheduled.items[1].Status != schedule.StatusPending || scheduled.items[1].Player2ID != "" {
		t.Fatalf("open match must stay pending, got %+v", scheduled.items[1])
	}
}

func TestMatchService_ScheduleMatch_ConcurrentBookingsOfOnePair(t *testing.T) {
	t.Parallel()

	scheduled := memory.NewScheduleRepository(nil)
	service := NewMatchService(
		&stubTournamentRepository{items: testTournaments()},
		memory.NewPlayerRepository([]player.Player{
			testPlayer("p-ana", "Ana", "oro", testTournamentID),
			testPlayer("p-bruno", "Bruno", "oro", testTournamentID),
		}),
		memory.NewResultRepository(nil),
		scheduled,
		idgen.NewUUIDGenerator(),
		nil,
	)

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		booked     int
		duplicates int
	)
	for i := range 20 {
		wg.Go(func() {
			a, b := "p-ana", "p-bruno"
			if i%2 == 1 {
				a, b = b, a
			}
			_, err := service.ScheduleMatch(context.Background(), ScheduleMatchInput{
				TournamentID: testTournamentID,
				DivisionID:   "oro",
				Player1ID:    a,
				Player2ID:    b,
				Location:     "Club Norte",
				Date:         "2026-01-10",
				TimeSlot:     "18:00",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				booked++
			case errors.Is(err, ErrDuplicateMatch):
				duplicates++
			default:
				t.Errorf("unexpected schedule error: %v", err)
			}
		})
	}
	wg.Wait()

	if booked != 1 || duplicates != 19 {
		t.Fatalf("expected one booking and 19 duplicates, got booked=%d duplicates=%d", booked, duplicates)
	}
	items, err := scheduled.ListByScope(context.Background(), testTournamentID, "oro")
	if err != nil {
		t.Fatalf("list schedule: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected a single active booking, got %d", len(items))
	}
}

func TestMatchService_JoinPendingMatch_LostRaceUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scheduleRepo := schedulemock.NewRepository(t)
	service, _, _ := newMatchServiceFixture()
	service.scheduleRepo = scheduleRepo

	open := schedule.Match{ID: "m-open", TournamentID: testTournamentID, DivisionID: "oro", Player1ID: "p-ana", Status: schedule.StatusPending}
	scheduleRepo.
		On("GetByID", mock.Anything, "m-open").
		Return(open, true, nil).
		Once()
	scheduleRepo.
		On("ConfirmPending", mock.Anything, "m-open", "p-bruno", "Bruno").
		Return(schedule.Match{}, schedule.ErrMatchNotPending).
		Once()

	_, err := service.JoinPendingMatch(ctx, "m-open", "p-bruno")
	if !errors.Is(err, ErrConflict) || !errors.Is(err, schedule.ErrMatchNotPending) {
		t.Fatalf("expected conflict wrapping ErrMatchNotPending, got %v", err)
	}
}

func TestMatchService_ExportSchedule(t *testing.T) {
	t.Parallel()

	service, _, scheduled := newMatchServiceFixture()
	scheduled.items = []schedule.Match{
		{ID: "m1", TournamentID: testTournamentID, DivisionID: "oro", Player1ID: "p-ana", Player1Name: "Ana", Player2ID: "p-bruno", Player2Name: "Bruno", Location: "Club Norte", Date: "2026-01-10", TimeSlot: "18:00", Status: schedule.StatusConfirmed},
	}

	got, err := service.ExportSchedule(context.Background(), testTournamentID, "oro")
	if err != nil {
		t.Fatalf("ExportSchedule error: %v", err)
	}
	if !strings.Contains(got, "Ana vs Bruno") || !strings.Contains(got, "Oro") {
		t.Fatalf("unexpected export:\n%s", got)
	}
}

func intPtr(v int) *int {
	return &v
}
