package observability

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// Stack is the telemetry started for one process: OpenTelemetry export
// through Uptrace, continuous profiling and a private pprof listener. Each
// part is optional.
type Stack struct {
	logger    *logging.Logger
	tracing   bool
	profiler  *pyroscope.Profiler
	pprof     *http.Server
	pprofAddr string
}

// Start brings up every enabled part. On error the parts already running
// are stopped again.
func Start(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Stack{logger: logger}

	s.startTracing(cfg)
	if err := s.startProfiler(cfg); err != nil {
		_ = s.Shutdown(context.Background())
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}
	if err := s.startPprof(cfg); err != nil {
		_ = s.Shutdown(context.Background())
		return nil, fmt.Errorf("start pprof: %w", err)
	}
	return s, nil
}

// Logger is the logger handed to Start, teed into the OpenTelemetry log
// pipeline when log export is on.
func (s *Stack) Logger() *logging.Logger {
	return s.logger
}

// PprofAddr is the bound pprof listener address, empty when disabled.
func (s *Stack) PprofAddr() string {
	return s.pprofAddr
}

func (s *Stack) startTracing(cfg config.Config) {
	if !cfg.UptraceEnabled || strings.TrimSpace(cfg.UptraceDSN) == "" {
		s.logger.Info("uptrace disabled")
		return
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	s.tracing = true
	if cfg.UptraceLogsEnabled {
		s.logger = s.logger.Tee(newUptraceLogCore(cfg.LogLevel, cfg.ServiceVersion))
	}
	s.logger.Info("uptrace enabled", "service_name", cfg.ServiceName, "logs_enabled", cfg.UptraceLogsEnabled)
}

// Ranking fans out across goroutines, so goroutine and mutex profiles are
// collected along with CPU and heap.
func (s *Stack) startProfiler(cfg config.Config) error {
	if !cfg.PyroscopeEnabled {
		return nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags:              map[string]string{"env": cfg.AppEnv, "storage": cfg.StorageBackend},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
		},
	})
	if err != nil {
		return err
	}
	s.profiler = profiler
	s.logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return nil
}

// startPprof binds before returning so a taken port fails startup instead
// of surfacing later in a log line.
func (s *Stack) startPprof(cfg config.Config) error {
	if !cfg.PprofEnabled {
		return nil
	}

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)

	s.pprof = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	s.pprofAddr = ln.Addr().String()
	go func() {
		if err := s.pprof.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("pprof server failed", "error", err)
		}
	}()
	s.logger.Info("pprof listening", "addr", s.pprofAddr)
	return nil
}

// Shutdown stops the running parts in reverse start order and joins their
// errors. Trace export is flushed last so spans from the others still ship.
func (s *Stack) Shutdown(ctx context.Context) error {
	var errs []error
	if s.pprof != nil {
		if err := s.pprof.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("pprof: %w", err))
		}
		s.pprof = nil
	}
	if s.profiler != nil {
		if err := s.profiler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("pyroscope: %w", err))
		}
		s.profiler = nil
	}
	if s.tracing {
		if err := uptrace.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("uptrace: %w", err))
		}
		s.tracing = false
	}
	return errors.Join(errs...)
}
