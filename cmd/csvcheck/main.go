// csvcheck inspects a catalog CSV pair without starting the server: column
// inventory, missing required columns, row counts, and the merge outcome.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/songboard/songboard-server/internal/dataset"
)

func main() {
	primaryPath := flag.String("primary", "", "Path to the primary catalog CSV (required)")
	annotationsPath := flag.String("annotations", "", "Path to the AI annotation CSV (optional)")
	flag.Parse()

	if *primaryPath == "" {
		fmt.Fprintln(os.Stderr, "usage: csvcheck -primary catalog.csv [-annotations annotations.csv]")
		os.Exit(2)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	primary, err := dataset.ReadCSV(*primaryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "primary CSV unreadable: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Primary table ===")
	describeTable(primary)
	reportColumns(primary, []string{dataset.ColTrackName, dataset.ColAlbumTitle, dataset.ColLyricsText})

	var annotations *dataset.Table
	if *annotationsPath != "" {
		annotations, err = dataset.ReadCSV(*annotationsPath)
		if err != nil {
			fmt.Printf("\nannotation CSV unreadable, merge will be skipped: %v\n", err)
			annotations = nil
		} else {
			fmt.Println("\n=== Annotation table ===")
			describeTable(annotations)
			reportColumns(annotations, dataset.AnnotationColumns)
		}
	}

	dataset.NormalizeKeys(primary, dataset.KeyColumns, log)
	merged, status := dataset.Merge(primary, annotations, log)
	dataset.Derive(merged, status.Available())

	analyzed := 0
	for _, row := range merged.Rows {
		if row.Get(dataset.ColHasAnalysis).IsTrue() {
			analyzed++
		}
	}

	fmt.Println("\n=== Merge result ===")
	fmt.Printf("status:       %s\n", status)
	fmt.Printf("rows:         %d\n", merged.NumRows())
	fmt.Printf("columns:      %d\n", len(merged.Columns))
	fmt.Printf("analyzed:     %d\n", analyzed)
}

func describeTable(t *dataset.Table) {
	fmt.Printf("rows: %d, columns: %d\n", t.NumRows(), len(t.Columns))
	for _, col := range t.Columns {
		missing := 0
		for _, row := range t.Rows {
			if row.Get(col).IsMissing() {
				missing++
			}
		}
		fmt.Printf("  %-24s missing %d/%d\n", col, missing, t.NumRows())
	}
}

func reportColumns(t *dataset.Table, required []string) {
	for _, col := range required {
		if !t.HasColumn(col) {
			fmt.Printf("MISSING required column: %s\n", col)
		}
	}
}
