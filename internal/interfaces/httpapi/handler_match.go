package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/league-standings/internal/usecase"
)

func (h *Handler) RecordResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RecordResult")
	defer span.End()

	var req recordResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchService.RecordResult(ctx, usecase.RecordResultInput{
		TournamentID: req.TournamentID,
		DivisionID:   req.DivisionID,
		Player1ID:    req.Player1ID,
		Player2ID:    req.Player2ID,
		Sets:         setsFromRequest(req.Sets),
		HadPint:      req.HadPint,
		PintCount:    req.PintCount,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record result failed", "tournament_id", req.TournamentID, "division_id", req.DivisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, resultToDTO(result))
}

func (h *Handler) ScheduleMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ScheduleMatch")
	defer span.End()

	var req scheduleMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	match, err := h.matchService.ScheduleMatch(ctx, usecase.ScheduleMatchInput{
		TournamentID: req.TournamentID,
		DivisionID:   req.DivisionID,
		Player1ID:    req.Player1ID,
		Player2ID:    req.Player2ID,
		Location:     req.Location,
		Date:         req.Date,
		TimeSlot:     req.TimeSlot,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "schedule match failed", "tournament_id", req.TournamentID, "division_id", req.DivisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, scheduledMatchToDTO(match))
}

// JoinMatch fills the open slot of a pending match. Without a player_id in
// the body the current session player joins.
func (h *Handler) JoinMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "JoinMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req joinMatchRequest
	if r.ContentLength != 0 {
		if err := h.decodeRequest(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	playerID := strings.TrimSpace(req.PlayerID)
	if playerID == "" {
		current, ok, err := h.registrationService.CurrentPlayer(ctx)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		if !ok {
			writeError(ctx, w, fmt.Errorf("%w: player_id is required when no session player is set", usecase.ErrInvalidInput))
			return
		}
		playerID = current.ID
	}

	match, err := h.matchService.JoinPendingMatch(ctx, matchID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "join match failed", "match_id", matchID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scheduledMatchToDTO(match))
}

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListResults")
	defer span.End()

	tournamentID, divisionID := r.PathValue("tournamentID"), r.PathValue("divisionID")
	results, err := h.matchService.ListResults(ctx, tournamentID, divisionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list results failed", "tournament_id", tournamentID, "division_id", divisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]resultDTO, 0, len(results))
	for _, item := range results {
		out = append(out, resultToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListSchedule")
	defer span.End()

	tournamentID, divisionID := r.PathValue("tournamentID"), r.PathValue("divisionID")
	matches, err := h.matchService.ListSchedule(ctx, tournamentID, divisionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list schedule failed", "tournament_id", tournamentID, "division_id", divisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]scheduledMatchDTO, 0, len(matches))
	for _, item := range matches {
		out = append(out, scheduledMatchToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ExportSchedule")
	defer span.End()

	tournamentID, divisionID := r.PathValue("tournamentID"), r.PathValue("divisionID")
	table, err := h.matchService.ExportSchedule(ctx, tournamentID, divisionID)
	if err != nil {
		h.logger.WarnContext(ctx, "export schedule failed", "tournament_id", tournamentID, "division_id", divisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeText(w, http.StatusOK, table)
}
