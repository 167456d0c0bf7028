/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/opengeospatial/ets-ogcapi-features10/internal/models"
	"github.com/opengeospatial/ets-ogcapi-features10/internal/output"
	"github.com/opengeospatial/ets-ogcapi-features10/internal/tester"
	"github.com/opengeospatial/ets-ogcapi-features10/internal/testpoint"
	"github.com/spf13/cobra"
)

var (
	planCollections int
	planCurl        bool
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan [openapi-spec-file]",
	Short: "Plan the requests of a conformance test run",
	Long: `Resolve the test points of every path of interest of an OGC API
Features instance and show the GET request each of them leads to.

Test points whose template variables cannot be bound are listed as shape
only; they cannot be requested.

Examples:
  ets plan api.yaml --iut https://demo.example.org/ogcapi
  ets plan api.yaml --iut https://demo.example.org/ogcapi --collections 5 -o yaml
  ets plan api.yaml --iut https://demo.example.org/ogcapi --curl`,
	Args: cobra.ExactArgs(1),
	Run:  runPlan,
}

func runPlan(cmd *cobra.Command, args []string) {
	specFile := args[0]

	root, err := instanceRoot()
	if err != nil {
		fail("invalid configuration", err)
	}

	doc, err := loadDocument(specFile)
	if err != nil {
		fail("parsing OpenAPI file", err)
	}
	api, err := doc.Description()
	if err != nil {
		fail("parsing OpenAPI file", err)
	}
	servers, err := doc.GetServerURLs()
	if err != nil {
		fail("parsing OpenAPI file", err)
	}

	engine := newEngine()
	summaries := planSummaries(engine, api, root, planCollections)

	if outputFormat != "" {
		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			fail("invalid output format", err)
		}
		if err := output.ExportSummaries(summaries, format, outputFile); err != nil {
			fail("exporting test points", err)
		}
		if outputFile == "" {
			return
		}
		fmt.Printf("\nTest points exported to: %s\n", outputFile)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	displayPlan(ctx, summaries, root, servers, itemLimit(engine, planCollections))
}

// itemLimit is the number of item listings planned at most
func itemLimit(e *testpoint.Engine, collections int) int {
	if collections < 0 {
		return e.Ceiling()
	}
	return collections
}

// planSummaries resolves every path of interest in suite order
func planSummaries(e *testpoint.Engine, api *models.APIDescription, root string, collections int) []models.TestPointSummary {
	sections := []struct {
		label  string
		points []models.TestPoint
	}{
		{"landing page", e.ResolveLandingPage(api, root)},
		{"api definition", e.ResolveForPattern(api, root, testpoint.APIDefinitionPath, false)},
		{"conformance", e.ResolveConformance(api, root)},
		{"collections", e.ResolveCollectionsMetadata(api, root)},
		{"collection", e.ResolveForPattern(api, root, testpoint.CollectionPath, false)},
		{"items", e.ResolveCollectionsList(api, root, collections)},
		{"feature", e.ResolveForPattern(api, root, testpoint.CollectionFeaturePath, true)},
	}

	summaries := make([]models.TestPointSummary, 0, len(sections))
	for _, s := range sections {
		summary := models.TestPointSummary{Label: s.label}
		for _, tp := range s.points {
			summary.AddPoint(tp)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func displayPlan(ctx context.Context, summaries []models.TestPointSummary, root string, servers []string, limit int) {
	rb := tester.NewRequestBuilder()

	fmt.Printf("\n%s\n", white("=== Request Plan ==="))
	fmt.Printf("Instance under test: %s\n", root)
	fmt.Printf("Declared servers:    %s\n", strings.Join(servers, ", "))

	var requests, shapes, skipped int
	for _, s := range summaries {
		fmt.Printf("\n%s (%d)\n", white(s.Label), s.Total)
		if s.Total == 0 {
			skipped++
			fmt.Printf("  %s no test points, skipped\n", yellow("-"))
			continue
		}

		for _, tp := range s.Points {
			req, err := rb.BuildRequest(ctx, tp)
			switch {
			case errors.Is(err, tester.ErrIncompleteBinding):
				shapes++
				fmt.Printf("  %s shape only: %s\n", yellow("●"), tp.URITemplate())
			case err != nil:
				fmt.Printf("  %s %s: %v\n", red("✗"), tp.URITemplate(), err)
			default:
				requests++
				fmt.Printf("  %s %s %s %s\n", green("✓"), req.Method, req.URL, cyan("Accept: "+req.Header.Get("Accept")))
				if planCurl {
					fmt.Printf("      %s\n", tester.CurlCommand(req))
				}
			}
		}
	}

	fmt.Println()
	fmt.Printf("%s\n", white("=== Plan Summary ==="))
	fmt.Printf("Requests:       %s\n", green(requests))
	fmt.Printf("Shape only:     %s\n", yellow(shapes))
	fmt.Printf("Skipped checks: %d\n", skipped)
	fmt.Printf("Item listings:  at most %d\n", limit)
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().IntVarP(&planCollections, "collections", "n", -1, "Number of item listings to plan (negative: ceiling)")
	planCmd.Flags().BoolVar(&planCurl, "curl", false, "Print a curl command for every request")

	// Output flags
	planCmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format: json, csv, yaml")
	planCmd.Flags().StringVar(&outputFile, "output-file", "", "Write output to file (default: stdout)")
}
