package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/riskibarqy/league-standings/internal/domain/standing"
)

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListTournaments")
	defer span.End()

	items, err := h.tournamentService.ListTournaments(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]tournamentDTO, 0, len(items))
	for _, t := range items {
		out = append(out, tournamentToDTO(t))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTournamentOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetTournamentOverview")
	defer span.End()

	tournamentID := r.PathValue("tournamentID")
	tables, err := h.standingService.TournamentOverview(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "tournament overview failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]divisionTableDTO, 0, len(tables))
	for _, table := range tables {
		out = append(out, divisionTableToDTO(table))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetDivisionRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetDivisionRoster")
	defer span.End()

	tournamentID, divisionID := r.PathValue("tournamentID"), r.PathValue("divisionID")
	roster, err := h.tournamentService.DivisionRoster(ctx, tournamentID, divisionID)
	if err != nil {
		h.logger.WarnContext(ctx, "division roster failed", "tournament_id", tournamentID, "division_id", divisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	players := make([]playerDTO, 0, len(roster.Players))
	for _, p := range roster.Players {
		players = append(players, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, divisionRosterDTO{
		Division: divisionToDTO(roster.Division),
		Capacity: roster.Capacity,
		Players:  players,
	})
}

func (h *Handler) GetRegistrationAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetRegistrationAvailability")
	defer span.End()

	tournamentID, divisionID := r.PathValue("tournamentID"), r.PathValue("divisionID")
	ok, err := h.registrationService.CanRegister(ctx, tournamentID, divisionID)
	if err != nil {
		h.logger.WarnContext(ctx, "registration availability failed", "tournament_id", tournamentID, "division_id", divisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, registrationAvailabilityDTO{
		TournamentID: tournamentID,
		DivisionID:   divisionID,
		CanRegister:  ok,
	})
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetStandings")
	defer span.End()

	h.writeStandings(w, r.WithContext(ctx), "rank standings", h.standingService.Rank)
}

func (h *Handler) GetPintsLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetPintsLeaderboard")
	defer span.End()

	h.writeStandings(w, r.WithContext(ctx), "pints leaderboard", h.standingService.PintsLeaderboard)
}

func (h *Handler) writeStandings(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	load func(ctx context.Context, tournamentID, divisionID string) ([]standing.PlayerStats, error),
) {
	ctx := r.Context()
	tournamentID, divisionID := r.PathValue("tournamentID"), r.PathValue("divisionID")

	rows, err := load(ctx, tournamentID, divisionID)
	if err != nil {
		h.logger.WarnContext(ctx, op+" failed", "tournament_id", tournamentID, "division_id", divisionID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(rows))
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetPlayerStats")
	defer span.End()

	tournamentID, divisionID, playerID := r.PathValue("tournamentID"), r.PathValue("divisionID"), r.PathValue("playerID")
	row, err := h.standingService.ComputeStats(ctx, tournamentID, divisionID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "compute stats failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, standingToDTO(row))
}

func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetHeadToHead")
	defer span.End()

	tournamentID, divisionID := r.PathValue("tournamentID"), r.PathValue("divisionID")
	playerA := strings.TrimSpace(r.URL.Query().Get("player_a"))
	playerB := strings.TrimSpace(r.URL.Query().Get("player_b"))

	record, played, err := h.standingService.HeadToHead(ctx, tournamentID, divisionID, playerA, playerB)
	if err != nil {
		h.logger.WarnContext(ctx, "head to head failed", "player_a", playerA, "player_b", playerB, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, headToHeadDTO{
		PlayerA:  playerA,
		PlayerB:  playerB,
		WinsA:    record.WinsA,
		WinsB:    record.WinsB,
		WinnerID: record.WinnerID,
		Played:   played,
	})
}
