// Package main provides the pricing HTTP service:
// - POST /evaluate: one-off evaluation of posted SKU metrics
// - GET /report: full dataset evaluated, returned as Markdown or CSV
// - POST /catalog, POST /ads: feed the backing stores (database mode)
// - /health, /status, /metrics for operations
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"sku-pricing-lab/internal/domain"
	"sku-pricing-lab/internal/loader"
	"sku-pricing-lab/internal/observability"
	"sku-pricing-lab/internal/pricing"
	"sku-pricing-lab/internal/reporting"
	"sku-pricing-lab/internal/storage"
	chstore "sku-pricing-lab/internal/storage/clickhouse"
	"sku-pricing-lab/internal/storage/memory"
	pgstore "sku-pricing-lab/internal/storage/postgres"
)

// Server holds all components of the pricing service.
type Server struct {
	// Configuration
	defaultLadder string
	catalogCSV    string
	adsCSV        string
	adWindowDays  int

	// Stores (nil in CSV mode)
	catalogStore storage.CatalogStore
	adStore      storage.AdPerformanceStore

	// Components
	cache   *loader.Cache
	metrics *observability.Metrics
	logger  *log.Logger

	// State
	mu           sync.Mutex
	started      time.Time
	evaluations  int
	reportsBuilt int
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	addr := flag.String("addr", ":8080", "HTTP listen address")
	defaultLadder := flag.String("ladder", "platinum", "Default rule set: simple or platinum")
	catalogCSV := flag.String("catalog-csv", os.Getenv("CATALOG_CSV"), "SKU catalog CSV path (CSV mode)")
	adsCSV := flag.String("ads-csv", os.Getenv("ADS_CSV"), "Advertising performance CSV path (CSV mode, optional)")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	adWindowDays := flag.Int("ad-window-days", 30, "Advertising measurement window in days (database mode)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if _, err := pricing.ConfigForLadder(*defaultLadder); err != nil {
		logger.Fatalf("Invalid --ladder: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := &Server{
		defaultLadder: *defaultLadder,
		catalogCSV:    *catalogCSV,
		adsCSV:        *adsCSV,
		adWindowDays:  *adWindowDays,
		cache:         loader.NewCache(),
		metrics:       observability.NewMetrics(""),
		logger:        logger,
		started:       time.Now(),
	}

	// Stores are only needed when no CSV source is configured.
	if *catalogCSV == "" {
		cleanup, err := server.createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
		if err != nil {
			logger.Fatalf("Failed to create stores: %v", err)
		}
		defer cleanup()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/status", server.handleStatus)
	mux.HandleFunc("/evaluate", server.handleEvaluate)
	mux.HandleFunc("/report", server.handleReport)
	mux.HandleFunc("/catalog", server.handleCatalog)
	mux.HandleFunc("/ads", server.handleAds)

	httpServer := &http.Server{Addr: *addr, Handler: mux}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
		cancel()
	}()

	logger.Printf("Starting HTTP server on %s (default ladder: %s)", *addr, *defaultLadder)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("HTTP server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores wires catalog and ad-performance stores for database mode.
func (s *Server) createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (func(), error) {
	if useMemory {
		s.catalogStore = memory.NewCatalogStore()
		s.adStore = memory.NewAdPerformanceStore()
		return func() {}, nil
	}

	if postgresDSN == "" || clickhouseDSN == "" {
		return nil, fmt.Errorf("--postgres-dsn and --clickhouse-dsn are required (or --catalog-csv, or --use-memory)")
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	chConn, err := chstore.NewConn(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect to clickhouse: %w", err)
	}

	s.catalogStore = pgstore.NewCatalogStore(pool)
	s.adStore = chstore.NewAdPerformanceStore(chConn)

	return func() {
		chConn.Close()
		pool.Close()
	}, nil
}

// evaluatorFor builds an evaluator for the requested ladder, falling back
// to the server default when the query value is empty.
func (s *Server) evaluatorFor(ladder string) (*pricing.Evaluator, error) {
	if ladder == "" {
		ladder = s.defaultLadder
	}
	cfg, err := pricing.ConfigForLadder(ladder)
	if err != nil {
		return nil, err
	}
	return pricing.NewEvaluator(cfg)
}

// EvaluateRequest is the JSON body for POST /evaluate.
type EvaluateRequest struct {
	Ladder          string  `json:"ladder,omitempty"`
	SKU             string  `json:"sku"`
	UnitCost        float64 `json:"unit_cost"`
	CurrentPrice    float64 `json:"current_price"`
	CompetitorPrice float64 `json:"competitor_price"`
	MinMarginPct    float64 `json:"min_margin_pct"`
	TargetMarginPct float64 `json:"target_margin_pct"`
	ReturnRatePct   float64 `json:"return_rate_pct"`
	InventoryDays   float64 `json:"inventory_days"`
	AdSpend         float64 `json:"ad_spend"`
	AdSales         float64 `json:"ad_sales"`
	UnitsSold       float64 `json:"units_sold"`
}

// EvaluateResponse is the JSON response for POST /evaluate.
type EvaluateResponse struct {
	SKU              string  `json:"sku"`
	RecommendedPrice float64 `json:"recommended_price"`
	Strategy         string  `json:"strategy"`
	Reason           string  `json:"reason"`
	Severity         string  `json:"severity"`
	Label            string  `json:"label"`

	CurrentMargin   float64 `json:"current_margin"`
	CPA             float64 `json:"cpa"`
	ActualACOS      float64 `json:"actual_acos"`
	BreakEvenACOS   float64 `json:"break_even_acos"`
	RefundTax       float64 `json:"refund_tax"`
	TotalLoadedCost float64 `json:"total_loaded_cost"`
	NetProfit       float64 `json:"net_profit"`
}

// handleEvaluate evaluates one posted set of SKU metrics.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	evaluator, err := s.evaluatorFor(req.Ladder)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	metrics := domain.SKUMetrics{
		SKU:             req.SKU,
		UnitCost:        req.UnitCost,
		CurrentPrice:    req.CurrentPrice,
		CompetitorPrice: req.CompetitorPrice,
		MinMarginPct:    req.MinMarginPct,
		TargetMarginPct: req.TargetMarginPct,
		ReturnRatePct:   req.ReturnRatePct,
		InventoryDays:   req.InventoryDays,
		AdSpend:         req.AdSpend,
		AdSales:         req.AdSales,
		UnitsSold:       req.UnitsSold,
	}

	start := time.Now()
	rec, err := evaluator.Evaluate(metrics)
	s.metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.EvaluationErrors.Inc()
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.metrics.EvaluationsTotal.WithLabelValues(string(rec.Strategy)).Inc()

	s.mu.Lock()
	s.evaluations++
	s.mu.Unlock()

	resp := EvaluateResponse{
		SKU:              rec.SKU,
		RecommendedPrice: rec.RecommendedPrice,
		Strategy:         string(rec.Strategy),
		Reason:           rec.Reason,
		Severity:         string(rec.Severity),
		Label:            reporting.Display(rec.Strategy).Label,
		CurrentMargin:    rec.Economics.CurrentMargin,
		CPA:              rec.Economics.CPA,
		ActualACOS:       rec.Economics.ActualACOS,
		BreakEvenACOS:    rec.Economics.BreakEvenACOS,
		RefundTax:        rec.Economics.RefundTax,
		TotalLoadedCost:  rec.Economics.TotalLoadedCost,
		NetProfit:        rec.Economics.NetProfit,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleReport evaluates the whole configured dataset and returns the
// rendered report. ?format=csv switches from Markdown to CSV.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	evaluator, err := s.evaluatorFor(r.URL.Query().Get("ladder"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	metrics, err := s.loadDataset(r.Context())
	if err != nil {
		s.logger.Printf("Dataset load error: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	report, err := reporting.NewGenerator(evaluator).Generate(metrics)
	if err != nil {
		s.metrics.EvaluationErrors.Inc()
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	for _, row := range report.Rows {
		s.metrics.EvaluationsTotal.WithLabelValues(string(row.Recommendation.Strategy)).Inc()
	}
	s.metrics.ReportsGenerated.Inc()

	s.mu.Lock()
	s.reportsBuilt++
	s.mu.Unlock()

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, reporting.RenderCSV(report.Rows))
		return
	}
	w.Header().Set("Content-Type", "text/markdown")
	fmt.Fprint(w, reporting.RenderMarkdown(report))
}

// loadDataset returns the merged SKU metrics from the configured source.
// CSV mode goes through the fingerprint cache so repeated report requests
// only re-read files that changed.
func (s *Server) loadDataset(ctx context.Context) ([]domain.SKUMetrics, error) {
	if s.catalogCSV != "" {
		metrics, hit, err := s.cache.LoadMerged(s.catalogCSV, s.adsCSV)
		if err != nil {
			return nil, err
		}
		if hit {
			s.metrics.LoaderCacheHits.Inc()
		} else {
			s.metrics.LoaderCacheMisses.Inc()
		}
		return metrics, nil
	}

	rows, err := s.catalogStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	catalog := make([]domain.SKUMetrics, 0, len(rows))
	for _, m := range rows {
		catalog = append(catalog, *m)
	}

	since := time.Now().UTC().AddDate(0, 0, -s.adWindowDays)
	totals, err := s.adStore.WindowTotals(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("ad window totals: %w", err)
	}

	return loader.Merge(catalog, totals), nil
}

// handleCatalog upserts SKU catalog rows (database mode only).
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.catalogStore == nil {
		http.Error(w, "catalog store not configured (CSV mode)", http.StatusConflict)
		return
	}

	var rows []domain.SKUMetrics
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	for i := range rows {
		if rows[i].SKU == "" {
			http.Error(w, "sku is required", http.StatusBadRequest)
			return
		}
		if err := s.catalogStore.Upsert(r.Context(), &rows[i]); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"upserted": len(rows)})
}

// adRow is the JSON shape for POST /ads.
type adRow struct {
	SKU       string  `json:"sku"`
	Day       string  `json:"day"` // YYYY-MM-DD
	Spend     float64 `json:"spend"`
	Sales     float64 `json:"sales"`
	UnitsSold float64 `json:"units_sold"`
}

// handleAds appends daily advertising performance rows (database mode only).
func (s *Server) handleAds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.adStore == nil {
		http.Error(w, "ad performance store not configured (CSV mode)", http.StatusConflict)
		return
	}

	var in []adRow
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	rows := make([]*domain.AdPerformanceDay, 0, len(in))
	for _, row := range in {
		if row.SKU == "" {
			http.Error(w, "sku is required", http.StatusBadRequest)
			return
		}
		day, err := time.Parse("2006-01-02", row.Day)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid day %q: %v", row.Day, err), http.StatusBadRequest)
			return
		}
		rows = append(rows, &domain.AdPerformanceDay{
			SKU:       row.SKU,
			Day:       day,
			Spend:     row.Spend,
			Sales:     row.Sales,
			UnitsSold: row.UnitsSold,
		})
	}

	if err := s.adStore.RecordDaily(r.Context(), rows); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"recorded": len(rows)})
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status        string `json:"status"`
	Uptime        string `json:"uptime"`
	DefaultLadder string `json:"default_ladder"`
	Source        string `json:"source"`
	Evaluations   int    `json:"evaluations"`
	ReportsBuilt  int    `json:"reports_built"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	source := "database"
	if s.catalogCSV != "" {
		source = "csv"
	}

	resp := StatusResponse{
		Status:        "running",
		Uptime:        time.Since(s.started).String(),
		DefaultLadder: s.defaultLadder,
		Source:        source,
		Evaluations:   s.evaluations,
		ReportsBuilt:  s.reportsBuilt,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
