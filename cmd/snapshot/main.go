// Command snapshot regenerates the bundled fallback data from a live
// observation API. It fetches each response shape for one identifier and
// provider and writes them as the JSON files embedded by the static source.
//
// Usage:
//
//	go run ./cmd/snapshot \
//	  -base-url http://127.0.0.1:8000 \
//	  -id 400a5792-7432-4ab5-a280-97dd91b21621 \
//	  -provider XGBoost \
//	  -out internal/adapter/static/data
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/vietmet/weathercore/internal/adapter/remote"
	"github.com/vietmet/weathercore/internal/config"
	"github.com/vietmet/weathercore/internal/observability"
)

func main() {
	baseURL := flag.String("base-url", "", "observation API base URL (required)")
	id := flag.String("id", config.DefaultLocationID, "identifier to snapshot")
	provider := flag.String("provider", config.DefaultProvider, "forecast provider tag")
	outDir := flag.String("out", "internal/adapter/static/data", "output directory")
	flag.Parse()

	if *baseURL == "" {
		log.Fatal("-base-url is required")
	}

	logger := observability.NewLogger("info", "text")
	metrics := observability.NewMetricsForTesting()
	client := remote.NewClient(*baseURL, 10*time.Second, 25*time.Second, metrics, logger)
	if !client.Enabled() {
		log.Fatalf("base URL %q does not enable remote access", *baseURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fetch := func(name string, get func() (any, error)) {
		v, err := get()
		if err != nil {
			log.Fatalf("fetch %s: %v", name, err)
		}
		if err := writeJSON(filepath.Join(*outDir, name), v); err != nil {
			log.Fatalf("write %s: %v", name, err)
		}
		fmt.Println("wrote", filepath.Join(*outDir, name))
	}

	fetch("latest.json", func() (any, error) { return client.Points(ctx) })
	fetch("summary.json", func() (any, error) { return client.Summary(ctx, *id) })
	fetch("daily.json", func() (any, error) { return client.Daily(ctx, *id, *provider) })
	fetch("timeseries.json", func() (any, error) { return client.Timeseries(ctx, *id, *provider, 48, 96) })
	fetch("overview.json", func() (any, error) { return client.Overview(ctx) })
	fetch("flood_risk_latest.json", func() (any, error) { return client.FloodRisk(ctx) })
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
