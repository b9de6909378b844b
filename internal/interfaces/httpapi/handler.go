package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	tournamentService   *usecase.TournamentService
	standingService     *usecase.StandingService
	matchService        *usecase.MatchService
	registrationService *usecase.RegistrationService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	tournamentService *usecase.TournamentService,
	standingService *usecase.StandingService,
	matchService *usecase.MatchService,
	registrationService *usecase.RegistrationService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		tournamentService:   tournamentService,
		standingService:     standingService,
		matchService:        matchService,
		registrationService: registrationService,
		logger:              logger,
		validator:           validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads a JSON body, rejecting unknown fields, then runs
// struct validation on it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", usecase.ErrInvalidInput, err)
	}

	decoder := sonic.ConfigStd.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
