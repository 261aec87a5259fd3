// Command etl performs the full batch load of the dimensional warehouse:
// it reads the products, users, and carts collections from MongoDB, builds
// dim_produto, dim_usuario, and fact_transacao, and reloads them with
// truncate-and-append semantics.
//
// Usage:
//
//	etl [-env-file .env] [-tables dim_produto,fact_transacao] [-parallel]
//	    [-create-tables] [-dry-run] [-pretty] [-v]
//
// Configuration comes from the environment (MONGO_*, PG_*, DW_*,
// ETL_BATCH_SIZE), optionally seeded from a dotenv file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"dwetl/internal/config"
	"dwetl/internal/logging"
	"dwetl/internal/metrics"
	"dwetl/internal/metrics/datadog"
	"dwetl/internal/metrics/prompush"
	"dwetl/internal/pipeline"
	"dwetl/internal/source"
	_ "dwetl/internal/storage/all"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		envFile      = flag.String("env-file", "", "dotenv file to load before reading the environment")
		tables       = flag.String("tables", "", "comma-separated destination tables to load (default: all)")
		parallel     = flag.Bool("parallel", false, "run the selected pipelines concurrently")
		createTables = flag.Bool("create-tables", false, "run CREATE TABLE IF NOT EXISTS before loading")
		dryRun       = flag.Bool("dry-run", false, "extract, build, and audit without touching the warehouse")
		pretty       = flag.Bool("pretty", false, "human-readable console logs instead of JSON")
		verbose      = flag.Bool("v", false, "debug logging")
		pushGateway  = flag.String("pushgateway", "", "Prometheus Pushgateway URL to push run metrics to")
		pushJob      = flag.String("pushgateway-job", "dwetl", "Pushgateway job name")
		datadogAddr  = flag.String("datadog-addr", "", "DogStatsD address for Datadog metrics, e.g. 127.0.0.1:8125")
	)
	flag.Parse()

	log := logging.New(*verbose, *pretty)

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Error().Err(err).Msg("configuration")
		return 1
	}
	issues := config.Validate(cfg)
	for _, iss := range issues {
		switch iss.Severity {
		case config.SeverityError:
			log.Error().Str("path", iss.Path).Msg(iss.Message)
		default:
			log.Warn().Str("path", iss.Path).Msg(iss.Message)
		}
	}
	if config.HasErrors(issues) {
		return 1
	}

	switch {
	case *pushGateway != "":
		b, err := prompush.NewBackend(*pushJob, *pushGateway)
		if err != nil {
			log.Error().Err(err).Msg("metrics backend")
			return 1
		}
		metrics.SetBackend(b)
	case *datadogAddr != "":
		b, err := datadog.NewBackend(datadog.Config{Addr: *datadogAddr, Namespace: "dwetl."})
		if err != nil {
			log.Error().Err(err).Msg("metrics backend")
			return 1
		}
		metrics.SetBackend(b)
	}

	pipelines, err := selectPipelines(*tables)
	if err != nil {
		log.Error().Err(err).Msg("table selection")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := source.Connect(ctx, source.Config{
		URI:      cfg.Mongo.URI(),
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Error().Err(err).Msg("source connection")
		return 1
	}
	defer src.Close(context.Background())

	runner := &pipeline.Runner{
		Source:       src,
		Kind:         cfg.Warehouse.Kind,
		DSN:          cfg.Warehouse.DSN(),
		BatchSize:    cfg.Runtime.BatchSize,
		CreateTables: *createTables,
		DryRun:       *dryRun,
		Log:          log,
	}

	summaries, runErr := runner.RunAll(ctx, pipelines, *parallel)
	for _, s := range summaries {
		log.Info().
			Str("pipeline", s.Pipeline).
			Int("extracted", s.Extracted).
			Int("built", s.Built).
			Int64("loaded", s.Loaded).
			Msg("summary")
	}

	if err := metrics.Flush(); err != nil {
		log.Warn().Err(err).Msg("metrics flush")
	}

	if runErr != nil {
		log.Error().Err(runErr).Msg("load failed")
		return 1
	}
	return 0
}

// selectPipelines resolves the -tables flag against the known pipelines,
// preserving the standard load order.
func selectPipelines(tables string) ([]pipeline.Pipeline, error) {
	all := pipeline.Defaults()
	if strings.TrimSpace(tables) == "" {
		return all, nil
	}

	wanted := map[string]bool{}
	for _, name := range strings.Split(tables, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		wanted[name] = true
	}

	var out []pipeline.Pipeline
	for _, p := range all {
		if wanted[p.Name] {
			out = append(out, p)
			delete(wanted, p.Name)
		}
	}
	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for name := range wanted {
			unknown = append(unknown, name)
		}
		return nil, fmt.Errorf("unknown tables: %s", strings.Join(unknown, ", "))
	}
	return out, nil
}
