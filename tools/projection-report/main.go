package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"padel-projection/internal/projection/application"
	projection "padel-projection/internal/projection/domain"
	"padel-projection/internal/projection/infrastructure/reference"
	projectionhttp "padel-projection/internal/projection/interfaces"
)

type config struct {
	refPath      string
	outPath      string
	currency     string
	mode         string
	sideHours    float64
	centerHours  float64
	stadiumHours float64
	fb           float64
	fitness      float64
	proShop      float64
	sponsorship  float64
	set          map[string]bool
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(2)
	}
	logger := log.New(os.Stderr, "", log.LstdFlags)

	store, err := reference.Load(cfg.refPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reference error: %v\n", err)
		os.Exit(2)
	}
	service, err := application.NewProjectionService(store, logger, application.SystemClock{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "service error: %v\n", err)
		os.Exit(2)
	}

	edits, err := cfg.edits()
	if err != nil {
		fmt.Fprintf(os.Stderr, "input error: %v\n", err)
		os.Exit(2)
	}
	ctx := context.Background()
	session := service.NewSession(ctx)
	session.Apply(ctx, edits...)
	report := service.BuildReport(session)

	printSummary(report)

	if cfg.outPath == "" {
		return
	}
	data, err := render(report, cfg.outPath, cfg.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(cfg.outPath, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("report written to %s\n", cfg.outPath)
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("projection-report", flag.ContinueOnError)
	fs.StringVar(&cfg.refPath, "ref", os.Getenv("REFERENCE_DATA_PATH"), "reference data YAML (optional)")
	fs.StringVar(&cfg.outPath, "out", "", "output file, .pdf or .xlsx (optional)")
	fs.StringVar(&cfg.currency, "currency", "IDR", "currency label")
	fs.StringVar(&cfg.mode, "mode", "", "pricing mode: normal or discount")
	fs.Float64Var(&cfg.sideHours, "side", 0, "daily hours per side court")
	fs.Float64Var(&cfg.centerHours, "center", 0, "daily hours per center court")
	fs.Float64Var(&cfg.stadiumHours, "stadium", 0, "daily hours for the stadium court")
	fs.Float64Var(&cfg.fb, "fb", 0, "F&B revenue in millions")
	fs.Float64Var(&cfg.fitness, "fitness", 0, "fitness revenue in millions")
	fs.Float64Var(&cfg.proShop, "pro-shop", 0, "pro shop revenue in millions")
	fs.Float64Var(&cfg.sponsorship, "sponsorship", 0, "sponsorship revenue in millions")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { cfg.set[f.Name] = true })

	if cfg.outPath != "" {
		switch strings.ToLower(filepath.Ext(cfg.outPath)) {
		case ".pdf", ".xlsx":
		default:
			return cfg, errors.New("-out must end in .pdf or .xlsx")
		}
	}
	return cfg, nil
}

// edits turns only the flags given on the command line into session edits.
func (c config) edits() ([]application.Edit, error) {
	var edits []application.Edit
	hours := []struct {
		flag  string
		court projection.CourtID
		value float64
	}{
		{"side", projection.CourtSide, c.sideHours},
		{"center", projection.CourtCenter, c.centerHours},
		{"stadium", projection.CourtStadium, c.stadiumHours},
	}
	for _, h := range hours {
		if c.set[h.flag] {
			edits = append(edits, application.SetCourtHours{Court: h.court, Hours: projectionhttp.ClampHours(h.value)})
		}
	}
	if c.set["mode"] {
		mode, err := projection.ParsePricingMode(c.mode)
		if err != nil {
			return nil, fmt.Errorf("mode %q: %w", c.mode, err)
		}
		edits = append(edits, application.SetPricingMode{Mode: mode})
	}
	ancillary := []struct {
		flag     string
		category projection.AncillaryCategory
		value    float64
	}{
		{"fb", projection.CategoryFoodAndBeverage, c.fb},
		{"fitness", projection.CategoryFitness, c.fitness},
		{"pro-shop", projection.CategoryProShop, c.proShop},
		{"sponsorship", projection.CategorySponsorship, c.sponsorship},
	}
	for _, a := range ancillary {
		if c.set[a.flag] {
			amount := projectionhttp.ClampAmount(a.value * projectionhttp.MillionUnit)
			edits = append(edits, application.SetAncillary{Category: a.category, Amount: amount})
		}
	}
	return edits, nil
}

func render(report application.Report, path, currency string) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return projectionhttp.BuildProjectionPDF(report, currency)
	}
	return projectionhttp.BuildProjectionXLSX(report, currency)
}

func printSummary(report application.Report) {
	for _, row := range report.Summary {
		fmt.Printf("%-28s %22s\n", row.Label, projectionhttp.FormatIDR(row.Amount))
	}
	m := report.Metrics
	fmt.Printf("%-28s %22s\n", "EBITDA Margin", projectionhttp.FormatMargin(m))
	fmt.Printf("%-28s %22s\n", "Payback", projectionhttp.FormatPayback(m.Payback))
}
