package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"chartprep/adapters/memory"
	"chartprep/adapters/tabular"
	"chartprep/app"
	"chartprep/domain/shape"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; environment wins for anything already set
	_ = godotenv.Load()

	var (
		input        = flag.String("input", os.Getenv("INPUT_FILE"), "CSV or XLSX file to read")
		sheet        = flag.String("sheet", "Sheet1", "worksheet name for XLSX input")
		category     = flag.String("category", "", "category (independent axis) field")
		series       = flag.String("series", "", "comma-separated series fields (default: all numerical fields)")
		stacked      = flag.Bool("stacked", false, "annotate cumulative stacking offsets")
		percentage   = flag.Bool("percentage", false, "scale values by the dataset grand total")
		normalized   = flag.Bool("normalized", false, "scale values by each category total")
		ascending    = flag.Bool("ascending", false, "sort records by ascending total")
		trendSpec    = flag.String("trend", "", "fit trend lines, as xField:yField:categoryField")
		withExtrema  = flag.Bool("extrema", false, "include per-series critical points")
		withProfiles = flag.Bool("profiles", false, "include per-series distribution profiles")
		out          = flag.String("out", "", "output file (default: stdout)")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("missing -input file (or INPUT_FILE env)")
	}
	if *category == "" {
		log.Fatal("missing -category field")
	}

	dataset, err := tabular.NewReader(*input).WithSheet(*sheet).Read()
	if err != nil {
		log.Fatalf("failed to read %s: %v", *input, err)
	}

	req := app.AnalysisRequest{
		CategoryField: *category,
		Options: shape.Options{
			Stacked:        *stacked,
			Percentage:     *percentage,
			Normalized:     *normalized,
			SortDescending: !*ascending,
		},
		WithExtrema:  *withExtrema,
		WithProfiles: *withProfiles,
	}
	if *series != "" {
		req.SeriesFields = strings.Split(*series, ",")
	}
	if *trendSpec != "" {
		parts := strings.Split(*trendSpec, ":")
		if len(parts) != 3 {
			log.Fatalf("invalid -trend %q, expected xField:yField:categoryField", *trendSpec)
		}
		req.Trend = &app.TrendRequest{XField: parts[0], YField: parts[1], CategoryField: parts[2]}
	}

	service := app.NewAnalysisService(memory.NewArtifactRepository())
	artifact, err := service.Analyze(context.Background(), dataset, req)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	encoded, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode output: %v", err)
	}

	if *out == "" {
		fmt.Println(string(encoded))
		return
	}
	if err := os.WriteFile(*out, encoded, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", *out, err)
	}
	log.Printf("wrote %s (%d records)", *out, len(artifact.Records))
}
