// Command munin-ingest runs one bulk-load pipeline (spec.md §4.6): parse a
// source file, enrich each record into a place.Place, and hand the batch to
// internal/ingest.Orchestrator for the create/ship/refresh/publish cycle.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hove-io/munin/internal/admin"
	"github.com/hove-io/munin/internal/alias"
	"github.com/hove-io/munin/internal/catalog"
	"github.com/hove-io/munin/internal/config"
	"github.com/hove-io/munin/internal/ingest"
	"github.com/hove-io/munin/internal/logging"
	"github.com/hove-io/munin/internal/place"
	"github.com/hove-io/munin/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	fs := pflag.NewFlagSet("munin-ingest", pflag.ExitOnError)
	config.RegisterFlags(fs)
	adminFile := fs.String("admin-file", "", "path to a JSON array of admin sources, required by street/addr/poi/stop sources")
	poiConfigFile := fs.String("poi-config", "", "path to a JSON {types, rules} POI matcher config, required by the poi source")
	configFile := fs.String("config", "", "optional YAML/JSON config file layered under flags")
	fs.Parse(os.Args[1:])

	cfg, err := config.LoadIngestConfig(fs, *configFile)
	if err != nil {
		log.Fatalf("load ingest config: %v", err)
	}

	logger := logging.New("production")
	if os.Getenv("ENVIRONMENT") != "" {
		logger = logging.New(os.Getenv("ENVIRONMENT"))
	}

	st := store.New(store.Config{
		Host:              cfg.TypesenseHost,
		Port:              cfg.TypesensePort,
		Protocol:          cfg.TypesenseProtocol,
		APIKey:            cfg.TypesenseAPIKey,
		ConnectionTimeout: 30 * time.Second,
	})

	cat := catalog.New(cfg.CatalogRoot)
	publisher := alias.New(cat, store.AliasAdapter{Store: st})
	orchestrator := ingest.NewOrchestrator(store.IngestAdapter{Store: st}, cat, publisher, ingest.Config{
		ChunkSize:              cfg.ChunkSize,
		Concurrency:            cfg.Concurrency,
		RetryCount:             cfg.RetryCount,
		RetryWait:              cfg.RetryWait,
		ForceMergeTimeout:      cfg.ForceMergeTimeout,
		AllowForceMergeTimeout: cfg.AllowForceMergeTimeout,
		Visibility:             cfg.Visibility(),
	}, logger)

	ctx := context.Background()
	now := time.Now()

	var docType catalog.DocType
	var places []*place.Place

	switch cfg.Source {
	case "admin":
		docType = catalog.DocTypeAdmin
		places, err = runAdmin(cfg)
	case "street":
		docType = catalog.DocTypeStreet
		places, err = runStreet(cfg, *adminFile, now)
	case "addr":
		docType = catalog.DocTypeAddr
		places, err = runAddr(cfg, *adminFile, now)
	case "poi":
		docType = catalog.DocTypePoi
		places, err = runPoi(ctx, cfg, *adminFile, *poiConfigFile, st, now)
	case "stop":
		docType = catalog.DocTypeStop
		places, err = runStop(cfg, *adminFile, now)
	default:
		log.Fatalf("unknown --source %q: must be one of admin, street, addr, poi, stop", cfg.Source)
	}
	if err != nil {
		log.Fatalf("ingest %s: %v", cfg.Source, err)
	}

	logger.WithField("count", len(places)).Infof("ingest: %s records built, shipping", cfg.Source)

	result, err := orchestrator.Run(ctx, docType, cfg.Dataset, places)
	if err != nil {
		log.Fatalf("ingest %s: %v", cfg.Source, err)
	}

	logger.WithFields(map[string]interface{}{
		"index":   result.Index,
		"indexed": result.TotalIndexed,
		"failed":  result.TotalFailed,
	}).Info("ingest: done")

	if result.TotalFailed > 0 {
		os.Exit(1)
	}
}

func loadAdminSources(path string) ([]ingest.AdminSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open admin file %s: %w", path, err)
	}
	defer f.Close()

	var sources []ingest.AdminSource
	if err := json.NewDecoder(f).Decode(&sources); err != nil {
		return nil, fmt.Errorf("decode admin file %s: %w", path, err)
	}
	return sources, nil
}

func buildHierarchy(cfg *config.IngestConfig, adminFile string, now time.Time) (*admin.Hierarchy, error) {
	if adminFile == "" {
		return nil, fmt.Errorf("--admin-file is required for source %q", cfg.Source)
	}
	sources, err := loadAdminSources(adminFile)
	if err != nil {
		return nil, err
	}
	return ingest.BuildAdminHierarchy(sources, cfg.MaxPopulation, now)
}

func runAdmin(cfg *config.IngestConfig) ([]*place.Place, error) {
	sources, err := loadAdminSources(cfg.Input)
	if err != nil {
		return nil, err
	}
	h, err := ingest.BuildAdminHierarchy(sources, cfg.MaxPopulation, time.Now())
	if err != nil {
		return nil, err
	}
	return h.All(), nil
}

// streetInput is the on-disk shape --input carries for the street source:
// the way/relation/exclusion triple BuildStreets needs.
type streetInput struct {
	Ways      []ingest.StreetWay      `json:"ways"`
	Relations []ingest.StreetRelation `json:"relations"`
	Exclusion ingest.StreetExclusion  `json:"exclusion"`
}

func runStreet(cfg *config.IngestConfig, adminFile string, now time.Time) ([]*place.Place, error) {
	h, err := buildHierarchy(cfg, adminFile, now)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("open street input %s: %w", cfg.Input, err)
	}
	defer f.Close()

	var in streetInput
	if err := json.NewDecoder(f).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode street input %s: %w", cfg.Input, err)
	}

	return ingest.BuildStreets(in.Ways, in.Relations, in.Exclusion, h, now)
}

func runAddr(cfg *config.IngestConfig, adminFile string, now time.Time) ([]*place.Place, error) {
	h, err := buildHierarchy(cfg, adminFile, now)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("open addr input %s: %w", cfg.Input, err)
	}
	defer f.Close()

	records, err := ingest.ParseBanoCSV(f)
	if err != nil {
		return nil, err
	}

	places := make([]*place.Place, 0, len(records))
	for _, rec := range records {
		p, err := ingest.BuildAddr(rec, h, now)
		if err != nil {
			log.Printf("ingest: skipping addr record %s %s: %v", rec.HouseNumber, rec.City, err)
			continue
		}
		places = append(places, p)
	}
	return places, nil
}

// poiConfig is the on-disk shape of --poi-config: the same types/rules
// pair ingest.NewPoiMatcher validates.
type poiConfig struct {
	Types []ingest.PoiTypeDef `json:"types"`
	Rules []ingest.PoiRule    `json:"rules"`
}

func runPoi(ctx context.Context, cfg *config.IngestConfig, adminFile, poiConfigPath string, st *store.Store, now time.Time) ([]*place.Place, error) {
	h, err := buildHierarchy(cfg, adminFile, now)
	if err != nil {
		return nil, err
	}
	if poiConfigPath == "" {
		return nil, fmt.Errorf("--poi-config is required for source \"poi\"")
	}

	pf, err := os.Open(poiConfigPath)
	if err != nil {
		return nil, fmt.Errorf("open poi config %s: %w", poiConfigPath, err)
	}
	defer pf.Close()
	var pc poiConfig
	if err := json.NewDecoder(pf).Decode(&pc); err != nil {
		return nil, fmt.Errorf("decode poi config %s: %w", poiConfigPath, err)
	}
	matcher, err := ingest.NewPoiMatcher(pc.Types, pc.Rules)
	if err != nil {
		return nil, fmt.Errorf("poi matcher: %w", err)
	}

	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("open poi input %s: %w", cfg.Input, err)
	}
	defer f.Close()
	var sources []ingest.PoiSource
	if err := json.NewDecoder(f).Decode(&sources); err != nil {
		return nil, fmt.Errorf("decode poi input %s: %w", cfg.Input, err)
	}

	reverse := ingest.CurrentIndexReverseLookup{
		Store:          st,
		AddrCollection: "", // always empty here: this run builds only POIs, so reverse-geocode enrichment is disabled
	}

	logger := logging.New("production")
	places := make([]*place.Place, 0, len(sources))
	for _, src := range sources {
		typeDef, ok := matcher.Match(src.Tags)
		if !ok {
			continue
		}
		p, err := ingest.BuildPoi(ctx, src, place.PoiTypeRef{ID: typeDef.ID, Name: typeDef.Name}, h, reverse, cfg.MaxDistanceReverse, logger, now)
		if err != nil {
			log.Printf("ingest: skipping poi %s: %v", src.ID, err)
			continue
		}
		places = append(places, p)
	}
	return places, nil
}

func runStop(cfg *config.IngestConfig, adminFile string, now time.Time) ([]*place.Place, error) {
	h, err := buildHierarchy(cfg, adminFile, now)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("open stop input %s: %w", cfg.Input, err)
	}
	defer f.Close()
	var sources []ingest.TransitStop
	if err := json.NewDecoder(f).Decode(&sources); err != nil {
		return nil, fmt.Errorf("decode stop input %s: %w", cfg.Input, err)
	}

	places := make([]*place.Place, 0, len(sources))
	for _, src := range sources {
		p, err := ingest.BuildStop(src, h, cfg.ModeWeights, cfg.Dataset, now)
		if err != nil {
			log.Printf("ingest: skipping stop %s: %v", src.ID, err)
			continue
		}
		places = append(places, p)
	}
	return places, nil
}
