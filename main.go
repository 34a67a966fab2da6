package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"trisketch/export"
	"trisketch/sketch"
	"trisketch/terminal"
)

func main() {
	var (
		interactive = flag.Bool("i", false, "Interactive editor mode")
		format      = flag.String("format", "", "Export format: json, dxf")
		outputFile  = flag.String("o", "", "Output file (default: derived from input name)")
		help        = flag.Bool("help", false, "Show help")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [sketch.json]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A triangle-chain sketching tool: build diagrams from measured side\n")
		fmt.Fprintf(os.Stderr, "lengths and export them to CAD.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                        # Start the editor with an empty sketch\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s room.json              # Edit an existing sketch\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format dxf room.json  # Export to room.dxf\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format dxf -o plan.dxf room.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEditor keys:\n")
		fmt.Fprintf(os.Stderr, "  e/t  edge / triangle edit mode    n/r  new / place root triangle\n")
		fmt.Fprintf(os.Stderr, "  m/x  move / delete selection      u/U  undo / redo\n")
		fmt.Fprintf(os.Stderr, "  s/d  save / export DXF            q    quit\n")
	}

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	var filename string
	if args := flag.Args(); len(args) > 0 {
		filename = args[0]
	}

	// Interactive unless an export format was asked for.
	if *interactive || *format == "" {
		if err := runInteractiveMode(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if filename == "" {
		fmt.Fprintf(os.Stderr, "Error: Please provide a sketch JSON file\n\n")
		flag.Usage()
		os.Exit(1)
	}

	doc, err := loadSketch(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading sketch: %v\n", err)
		os.Exit(1)
	}

	exportFormat, err := export.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Available formats: json, dxf\n")
		os.Exit(1)
	}

	exporter, err := export.NewExporter(exportFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating exporter: %v\n", err)
		os.Exit(1)
	}

	out := *outputFile
	if out == "" {
		out = strings.TrimSuffix(filename, ".json") + exporter.FileExtension()
	}

	if err := exporter.Export(doc, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting sketch: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Successfully exported to %s\n", out)
}

// loadSketch reads and validates a sketch document.
func loadSketch(filename string) (*sketch.Sketch, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var s sketch.Sketch
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Hand-edited files can arrive with missing or duplicate ids.
	sketch.EnsureUniqueIDs(&s)
	return &s, nil
}

// runInteractiveMode launches the editor, on the named sketch file if
// one was given.
func runInteractiveMode(filename string) error {
	doc := &sketch.Sketch{}
	if filename != "" {
		loaded, err := loadSketch(filename)
		if err != nil {
			return fmt.Errorf("failed to load sketch: %w", err)
		}
		doc = loaded
	}
	return terminal.Run(doc, filename)
}
