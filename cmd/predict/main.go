package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/clickwise/clickwise/internal/domain"
	"github.com/clickwise/clickwise/internal/services/prediction"
)

// capture is the on-disk input format: a page context plus the DOM
// elements extracted from the landing page.
type capture struct {
	Context  domain.PageContext  `json:"context"`
	Elements []domain.DOMElement `json:"elements"`
}

func main() {
	// Parse flags
	input := flag.String("input", "", "Path to a JSON capture file (context + elements)")
	output := flag.String("output", "", "Output file for the JSON report (empty for stdout)")
	displayCTA := flag.String("display-cta", "", "Externally identified CTA element ID")
	skipAdvanced := flag.Bool("skip-advanced", false, "Disable the 80/20 click redistribution")
	top := flag.Int("top", 10, "Number of predictions to print in the summary")
	verbose := flag.Bool("v", false, "Enable debug logging")

	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: predict -input capture.json [-output report.json]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// Initialize logger
	var logger *zap.Logger
	if *verbose {
		logger, _ = zap.NewDevelopment()
	} else {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	data, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading capture: %v\n", err)
		os.Exit(1)
	}

	var snap capture
	if err := json.Unmarshal(data, &snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing capture: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Predicting clicks for: %s\n", snap.Context.URL)
	fmt.Printf("Elements: %d, Impressions: %d, Source: %s\n",
		len(snap.Elements), snap.Context.TotalImpressions, snap.Context.TrafficSource)
	fmt.Println("---")

	engine := prediction.NewEngine(logger)
	report, err := engine.PredictClicks(snap.Elements, snap.Context, prediction.Options{
		DisplayCTAID:             *displayCTA,
		SkipAdvancedDistribution: *skipAdvanced,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Prediction failed: %v\n", err)
		os.Exit(1)
	}

	printSummary(report, *top)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
		os.Exit(1)
	}

	if *output == "" {
		fmt.Println(string(out))
		return
	}
	if err := os.WriteFile(*output, out, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Report written to %s\n", *output)
}

func printSummary(report *prediction.Report, top int) {
	meta := report.Metadata
	fmt.Printf("Analysis %s (engine v%s)\n", meta.AnalysisID, meta.EngineVersion)
	fmt.Printf("Estimated CPC: $%.2f\n", meta.EstimatedCPC)
	fmt.Printf("Reliability: %s (%.2f)\n", report.Reliability.Level, report.Reliability.Score)
	if meta.PrimaryCTAID != "" {
		fmt.Printf("Primary CTA: %s", meta.PrimaryCTAID)
		if meta.CTAMismatch {
			fmt.Printf(" (display CTA %s disagrees)", meta.DisplayCTAID)
		}
		fmt.Println()
	}
	for _, warning := range report.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}

	if top > len(report.Predictions) {
		top = len(report.Predictions)
	}
	fmt.Printf("Top %d elements by predicted clicks:\n", top)
	for i := 0; i < top; i++ {
		p := report.Predictions[i]
		fmt.Printf("  %2d. %-30s clicks=%.1f share=%s%% waste=$%.2f\n",
			i+1, p.ElementID, p.PredictedClicks,
			strconv.FormatFloat(p.ClickShare, 'f', 1, 64), p.WastedSpend)
	}

	if wa := report.WastedClickAnalysis; wa != nil {
		fmt.Printf("Wasted elements: %d (avg score %.3f)\n",
			wa.TotalWastedElements, wa.AverageWasteScore)
		for _, rec := range wa.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
	}
}
