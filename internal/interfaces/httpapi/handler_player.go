package httpapi

import (
	"net/http"

	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "Register")
	defer span.End()

	var req registerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.registrationService.Register(ctx, usecase.RegisterInput{
		Name:               req.Name,
		Email:              req.Email,
		Password:           req.Password,
		Role:               player.Role(req.Role),
		DivisionID:         req.DivisionID,
		TournamentIDs:      req.TournamentIDs,
		Availability:       req.Availability,
		PreferredLocations: req.PreferredLocations,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register failed", "division_id", req.DivisionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(p))
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetSession")
	defer span.End()

	p, ok, err := h.registrationService.CurrentPlayer(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get session failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := sessionDTO{}
	if ok {
		dto := playerToDTO(p)
		out.Player = &dto
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) PutSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "PutSession")
	defer span.End()

	var req setSessionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.registrationService.SetCurrentPlayer(ctx, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "set session failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := playerToDTO(p)
	writeSuccess(ctx, w, http.StatusOK, sessionDTO{Player: &dto})
}
