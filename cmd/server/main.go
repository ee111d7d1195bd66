// Command server exposes the scansion engine as a JSON REST API.
//
// Endpoints:
//
//	POST /api/scan            body: {"lines":[...],"meter":"hexameter","max_passes":200}
//	GET  /api/quantities?form=<word>
//	GET  /api/meters
//	GET  /metrics
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/cours-de-latin/scansion"
	"github.com/cours-de-latin/scansion/dictionary"
	"github.com/cours-de-latin/scansion/internal/config"
	"github.com/cours-de-latin/scansion/internal/logger"
)

// maxBodyBytes caps the size of a scan request.
const maxBodyBytes = 1 << 20

// ---- JSON types ---------------------------------------------------------

type scanRequest struct {
	Lines     []string `json:"lines"`
	Meter     string   `json:"meter"`
	MaxPasses int      `json:"max_passes"`
}

type lineJSON struct {
	Index      int                 `json:"index"`
	Text       string              `json:"text"`
	Candidates []scansion.Sequence `json:"candidates"`
	Annotation string              `json:"annotation,omitempty"`
	Resolved   bool                `json:"resolved"`
	Fallback   bool                `json:"fallback,omitempty"`
}

type scanResponse struct {
	RunID  string               `json:"run_id"`
	Form   string               `json:"form"`
	State  scansion.State       `json:"state"`
	Lines  []lineJSON           `json:"lines"`
	Passes []scansion.PassStats `json:"passes"`
	Stats  scansion.Stats       `json:"stats"`
}

type hypothesisJSON struct {
	Meter  scansion.Sequence `json:"meter"`
	Weight int               `json:"weight"`
}

type quantitiesResponse struct {
	Form       string           `json:"form"`
	Hypotheses []hypothesisJSON `json:"hypotheses"`
}

type meterJSON struct {
	Name      string   `json:"name"`
	Templates []string `json:"templates"`
}

type metersResponse struct {
	Meters []meterJSON `json:"meters"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func toScanResponse(res *scansion.Result) scanResponse {
	lines := make([]lineJSON, 0, len(res.Lines))
	for _, l := range res.Lines {
		lines = append(lines, lineJSON{
			Index:      l.Index,
			Text:       l.Text,
			Candidates: l.Candidates,
			Annotation: l.Annotation(),
			Resolved:   l.Resolved,
			Fallback:   l.Fallback,
		})
	}
	return scanResponse{
		RunID:  res.RunID,
		Form:   res.Form,
		State:  res.State,
		Lines:  lines,
		Passes: res.Passes,
		Stats:  res.Stats,
	}
}

// ---- metrics ------------------------------------------------------------

type metrics struct {
	scans  *prometheus.CounterVec
	lines  prometheus.Counter
	passes prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scansion_scans_total",
			Help: "Scan requests by final state.",
		}, []string{"state"}),
		lines: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scansion_lines_total",
			Help: "Verse lines scanned.",
		}),
		passes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scansion_passes",
			Help:    "Refinement passes per scan.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 9),
		}),
	}
	reg.MustRegister(m.scans, m.lines, m.passes)
	return m
}

func (m *metrics) observe(res *scansion.Result) {
	m.scans.WithLabelValues(res.State.String()).Inc()
	m.lines.Add(float64(len(res.Lines)))
	m.passes.Observe(float64(len(res.Passes)))
}

// ---- handlers -----------------------------------------------------------

// quantifier is the dictionary as seen by the quantities endpoint.
type quantifier interface {
	scansion.Oracle
	Quantities(form string) ([]scansion.Hypothesis, error)
}

type server struct {
	cfg     config.ScanConfig
	dict    quantifier
	metrics *metrics
	log     *slog.Logger
}

func handleScan(s *server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body scanRequest
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Lines) == 0 {
			writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'lines' array")
			return
		}

		cfg := s.cfg
		if body.Meter != "" {
			cfg.Meter = body.Meter
		}
		if body.MaxPasses > 0 {
			cfg.MaxPasses = body.MaxPasses
		}
		opts, err := cfg.ScanOptions()
		if errors.Is(err, scansion.ErrUnknownMeter) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		opts.Logger = s.log
		if s.dict != nil {
			opts.Oracle = s.dict
		}

		res, err := scansion.NewScanner(opts).Scan(body.Lines)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.metrics.observe(res)
		writeJSON(w, http.StatusOK, toScanResponse(res))
	}
}

func handleQuantities(s *server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		if s.dict == nil {
			writeError(w, http.StatusServiceUnavailable, "no dictionary configured")
			return
		}
		form := r.URL.Query().Get("form")
		if form == "" {
			writeError(w, http.StatusBadRequest, "missing 'form' query parameter")
			return
		}
		hs, err := s.dict.Quantities(form)
		if errors.Is(err, dictionary.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("form %q not found", form))
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out := make([]hypothesisJSON, len(hs))
		for i, h := range hs {
			out[i] = hypothesisJSON{Meter: h.Meter, Weight: h.Weight}
		}
		writeJSON(w, http.StatusOK, quantitiesResponse{Form: form, Hypotheses: out})
	}
}

func handleMeters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		var out []meterJSON
		for _, f := range scansion.Forms() {
			m := meterJSON{Name: f.Name}
			for _, t := range f.Templates {
				m.Templates = append(m.Templates, t.String())
			}
			out = append(out, m)
		}
		writeJSON(w, http.StatusOK, metersResponse{Meters: out})
	}
}

func newHandler(s *server, reg *prometheus.Registry, origins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/scan", handleScan(s))
	mux.HandleFunc("/api/quantities", handleQuantities(s))
	mux.HandleFunc("/api/meters", handleMeters())
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)
}

// ---- main ---------------------------------------------------------------

func main() {
	configPath := flag.String("config", "", "config file path (YAML)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	s := &server{cfg: cfg.Scan, log: log}
	if cfg.Dictionary.Enabled() {
		log.Info("loading dictionary", "dir", cfg.Dictionary.DataDir)
		dict, err := dictionary.New(cfg.Dictionary.DataDir, cfg.Dictionary.CacheSize)
		if err != nil {
			log.Error("failed to load dictionary", "error", err)
			os.Exit(1)
		}
		log.Info("dictionary loaded", "lemmas", dict.Len())
		s.dict = dict
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	s.metrics = newMetrics(reg)

	log.Info("listening", "addr", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, newHandler(s, reg, cfg.Server.Origins())); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
