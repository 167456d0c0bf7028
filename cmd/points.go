/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/opengeospatial/ets-ogcapi-features10/internal/models"
	"github.com/opengeospatial/ets-ogcapi-features10/internal/output"
	"github.com/opengeospatial/ets-ogcapi-features10/internal/testpoint"
	"github.com/spf13/cobra"
)

var (
	pattern        string
	exactPath      string
	resourcePath   string
	maxCollections int
	allowEmpty     bool
	filter         string
	verbose        bool
	outputFormat   string
	outputFile     string
)

// pointsCmd represents the points command
var pointsCmd = &cobra.Command{
	Use:   "points [openapi-spec-file]",
	Short: "Resolve the test points of one path of interest",
	Long: `Resolve the test points of one path of interest.

Exactly one selector applies:
  --pattern      every path matching a template (default: item listings)
  --exact        one concrete path, unbound variables kept as shape only
  --resource     one concrete resource, variables bound from the path
  --collections  the item listings, truncated to N (negative: ceiling)

Examples:
  ets points api.yaml --iut https://demo.example.org/ogcapi
  ets points api.yaml --iut https://demo.example.org/ogcapi --exact /collections/lakes/items
  ets points api.yaml --iut https://demo.example.org/ogcapi --collections 10 -o json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		specFile := args[0]

		root, err := instanceRoot()
		if err != nil {
			fail("invalid configuration", err)
		}

		api, err := loadDescription(specFile)
		if err != nil {
			fail("parsing OpenAPI file", err)
		}

		summary, err := resolvePoints(cmd, newEngine(), api, root)
		if err != nil {
			fail("invalid selector", err)
		}
		summary = filterPoints(summary, filter)

		if outputFormat != "" {
			format, err := output.ParseFormat(outputFormat)
			if err != nil {
				fail("invalid output format", err)
			}
			if err := output.ExportSummaries([]models.TestPointSummary{summary}, format, outputFile); err != nil {
				fail("exporting test points", err)
			}
			if outputFile == "" {
				return
			}
			fmt.Printf("\nTest points exported to: %s\n", outputFile)
		}

		displayPoints(summary, verbose)
	},
}

// resolvePoints runs the selector chosen on the command line
func resolvePoints(cmd *cobra.Command, e *testpoint.Engine, api *models.APIDescription, root string) (models.TestPointSummary, error) {
	var chosen []string
	for _, name := range []string{"pattern", "exact", "resource", "collections"} {
		if cmd.Flags().Changed(name) {
			chosen = append(chosen, "--"+name)
		}
	}
	if len(chosen) > 1 {
		return models.TestPointSummary{}, fmt.Errorf("only one of %s may be given", strings.Join(chosen, ", "))
	}

	var label string
	var points []models.TestPoint
	switch {
	case cmd.Flags().Changed("exact"):
		label = "exact " + exactPath
		points = e.ResolveExact(api, root, exactPath)
	case cmd.Flags().Changed("resource"):
		label = "resource " + resourcePath
		points = e.ResolveSingleResource(api, root, resourcePath)
	case cmd.Flags().Changed("collections"):
		label = "collections"
		points = e.ResolveCollectionsList(api, root, maxCollections)
	default:
		label = "pattern " + pattern
		points = e.ResolveForPattern(api, root, pattern, allowEmpty)
	}

	summary := models.TestPointSummary{Label: label}
	for _, tp := range points {
		summary.AddPoint(tp)
	}
	return summary, nil
}

// filterPoints keeps the test points whose path template contains filterStr
func filterPoints(summary models.TestPointSummary, filterStr string) models.TestPointSummary {
	if filterStr == "" {
		return summary
	}

	filtered := models.TestPointSummary{Label: summary.Label}
	for _, tp := range summary.Points {
		if strings.Contains(tp.PathTemplate, filterStr) {
			filtered.AddPoint(tp)
		}
	}
	return filtered
}

func displayPoints(summary models.TestPointSummary, verbose bool) {
	fmt.Printf("\n%s\n", white("=== Test Points: "+summary.Label+" ==="))
	fmt.Printf("Total:    %d\n", summary.Total)
	fmt.Printf("Complete: %s\n", green(summary.Complete))
	if summary.Partial > 0 {
		fmt.Printf("Partial:  %s\n", yellow(summary.Partial))
	} else {
		fmt.Printf("Partial:  %d\n", summary.Partial)
	}
	fmt.Println()

	if summary.Total == 0 {
		fmt.Println("No test points found, the check is skipped")
		return
	}

	for _, tp := range summary.Points {
		status := green("✓")
		if !tp.IsComplete() {
			status = yellow("●")
		}

		fmt.Printf("%s %s%s", status, strings.TrimSuffix(tp.ServerURL, "/"), tp.PathTemplate)
		if b := output.FormatBinding(tp.Binding); b != "" {
			fmt.Printf(" %s", cyan("["+b+"]"))
		}
		fmt.Println()

		if verbose {
			fmt.Printf("    Media types: %s\n", strings.Join(tp.SortedMediaTypes(), ", "))
		}
	}
}

func init() {
	rootCmd.AddCommand(pointsCmd)

	pointsCmd.Flags().StringVar(&pattern, "pattern", testpoint.CollectionItemsPath, "Select paths matching a template")
	pointsCmd.Flags().StringVar(&exactPath, "exact", "", "Select the test points producing one concrete path")
	pointsCmd.Flags().StringVar(&resourcePath, "resource", "", "Select one concrete resource and bind its variables")
	pointsCmd.Flags().IntVar(&maxCollections, "collections", -1, "Select item listings, at most N (negative: ceiling)")
	pointsCmd.Flags().BoolVar(&allowEmpty, "allow-empty", false, "Keep test points whose variables cannot be bound")
	pointsCmd.Flags().StringVar(&filter, "filter", "", "Filter test points by path template substring")
	pointsCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed output")
	pointsCmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format: json, csv, yaml")
	pointsCmd.Flags().StringVar(&outputFile, "output-file", "", "Write output to file (default: stdout)")
}

