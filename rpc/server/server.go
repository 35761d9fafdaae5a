package server

import (
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/JoeyZhen/Library-BMS/lib/dispatch"
	"github.com/JoeyZhen/Library-BMS/lib/library"
	"github.com/JoeyZhen/Library-BMS/rpc/common"
	"github.com/JoeyZhen/Library-BMS/rpc/transport"
	"github.com/VictoriaMetrics/metrics"
)

var Logger = common.GetLogger("rpc")

// NewServer creates a new library server
// It takes a config and a transport as parameters
//
// Usage:
//
//	s := server.NewServer(
//		*config,
//		tcp.NewTCPServerTransport(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewServer(
	config common.ServerConfig,
	transport transport.IServerTransport,
) libraryServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	Logger.Infof("Created library server")
	Logger.Infof(config.String())

	return libraryServer{
		config:    config,
		transport: transport,
	}
}

type libraryServer struct {
	config     common.ServerConfig
	transport  transport.IServerTransport
	dispatcher *dispatch.Dispatcher
}

// registerTransportHandler binds the dispatcher to the transport layer
// and instruments every request with per-command metrics
func (s *libraryServer) registerTransportHandler() {
	requestDuration := metrics.GetOrCreateSummary("lbms_request_duration_seconds")

	s.transport.RegisterHandler(func(req string) string {
		start := time.Now()
		resp := s.dispatcher.Handle(req)
		requestDuration.UpdateDuration(start)

		name := s.dispatcher.CommandOf(req)
		metrics.GetOrCreateCounter(fmt.Sprintf(`lbms_requests_total{command=%q}`, name)).Inc()

		Logger.Debugf("Processed %s request took %s", name, time.Since(start))
		return resp
	})
}

func (s *libraryServer) init() error {

	// Init logger
	common.InitLoggers(s.config)

	// Create the library aggregate with the configured policy
	lib, err := library.New(library.Policy{
		OpenHour:       s.config.OpenHour,
		CloseHour:      s.config.CloseHour,
		LoanLimit:      s.config.LoanLimit,
		LoanPeriodDays: s.config.LoanPeriodDays,
		LateFee:        s.config.LateFee,
		FineLimit:      s.config.FineLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to create library: %w", err)
	}

	s.dispatcher = dispatch.New(lib)

	Logger.Infof("Library setup completed successfully")

	// Configure the transport layer
	s.registerTransportHandler()

	// Optionally expose prometheus metrics over HTTP
	if s.config.MetricsEndpoint != "" {
		go s.serveMetrics()
	}

	return nil
}

// serveMetrics exposes the collected metrics in prometheus text format
func (s *libraryServer) serveMetrics() {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		metrics.WritePrometheus(w, true)
	})

	Logger.Infof("Starting metrics endpoint on %s", s.config.MetricsEndpoint)
	if err := http.ListenAndServe(s.config.MetricsEndpoint, mux); err != nil {
		Logger.Errorf("Metrics endpoint failed: %v", err)
	}
}

// Serve starts the library server
// This function will also initialize the library and start the transport layer
func (s *libraryServer) Serve() error {
	if err := s.init(); err != nil {
		return err
	}
	return s.transport.Listen(s.config)
}
