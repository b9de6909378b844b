package httpapi

import (
	"net/http"

	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

func NewRouter(handler *Handler, logger *logging.Logger, corsAllowedOrigins []string) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerTournamentRoutes(mux, handler)
	registerMatchRoutes(mux, handler)
	registerPlayerRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerTournamentRoutes(mux *http.ServeMux, handler *Handler) {
	const division = "/v1/tournaments/{tournamentID}/divisions/{divisionID}"

	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/overview", handler.GetTournamentOverview)
	mux.HandleFunc("GET "+division+"/players", handler.GetDivisionRoster)
	mux.HandleFunc("GET "+division+"/registration", handler.GetRegistrationAvailability)
	mux.HandleFunc("GET "+division+"/standings", handler.GetStandings)
	mux.HandleFunc("GET "+division+"/standings/pints", handler.GetPintsLeaderboard)
	mux.HandleFunc("GET "+division+"/players/{playerID}/stats", handler.GetPlayerStats)
	mux.HandleFunc("GET "+division+"/head-to-head", handler.GetHeadToHead)
	mux.HandleFunc("GET "+division+"/results", handler.ListResults)
	mux.HandleFunc("GET "+division+"/schedule", handler.ListSchedule)
	mux.HandleFunc("GET "+division+"/schedule/export", handler.ExportSchedule)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/results", handler.RecordResult)
	mux.HandleFunc("POST /v1/schedule", handler.ScheduleMatch)
	mux.HandleFunc("POST /v1/schedule/{matchID}/join", handler.JoinMatch)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/registrations", handler.Register)
	mux.HandleFunc("GET /v1/session", handler.GetSession)
	mux.HandleFunc("PUT /v1/session", handler.PutSession)
}
