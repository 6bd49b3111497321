// Command riffdump is a minimal inspection tool for Riff header files: it
// opens a header, prints the type description and properties, and, when
// the footer is parsed, the file's row count. It does not print the
// stripe index or evaluate predicates. It is not a general query tool or
// benchmark harness — those are explicitly out of scope.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/lychee-technology/riff"
	"github.com/lychee-technology/riff/internal/planner"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "info":
		if err := runInfo(os.Args[2:]); err != nil {
			log.Fatalf("info: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: riffdump <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  info   Print header and footer info for a Riff file")
}

func runInfo(args []string) error {
	flags := flag.NewFlagSet("info", flag.ContinueOnError)
	flags.SetOutput(os.Stdout)
	flags.Usage = func() {
		fmt.Println("Usage: riffdump info -path <header-file> [options]")
		fmt.Println()
		fmt.Println("Options:")
		flags.PrintDefaults()
	}

	path := flags.String("path", "", "Path to the header file")
	footer := flags.Bool("footer", true, "Also parse the footer block")
	verbose := flags.Bool("v", false, "Enable debug logging")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *path == "" {
		return fmt.Errorf("-path is required")
	}

	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			riff.SetLogger(l)
		}
	}

	r, err := planner.Open(planner.OSFileSystem{}, *path, nil)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer r.Close()

	if err := r.ReadFileInfo(*footer); err != nil {
		return fmt.Errorf("read file info: %w", err)
	}

	printHeader(r.Header())
	if fi := r.Footer(); fi != nil {
		fmt.Printf("rows: %d\n", fi.NumRows)
	}

	return nil
}

func printHeader(fh *riff.FileHeader) {
	fmt.Printf("columns (%d, %d indexed):\n", fh.Types.Size(), fh.Types.NumIndexed())
	for i := 0; i < fh.Types.Size(); i++ {
		spec := fh.Types.At(i)
		fmt.Printf("  [%d] %s %s indexed=%v nullable=%v\n",
			spec.Position, spec.Name, spec.DataType, spec.Indexed, spec.Nullable)
	}
	if len(fh.Properties) > 0 {
		fmt.Println("properties:")
		for k, v := range fh.Properties {
			fmt.Printf("  %s=%s\n", k, v)
		}
	}
}
