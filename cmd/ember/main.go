// Package main provides the Ember CLI.
package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/ember-ml/ember/internal/serialization"
)

const version = "v0.3.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("Ember %s\n", version)
	case "inspect":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: ember inspect <file.ember>")
			os.Exit(2)
		}
		if err := inspect(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "ember: %v\n", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("Ember - Parameter-Tree Runtime for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version            Show version")
	fmt.Println("  inspect <file>     Print the contents of a checkpoint file")
}

func inspect(path string) error {
	_, header, err := serialization.Read(path)
	if err != nil {
		return err
	}

	fmt.Printf("file:     %s\n", path)
	fmt.Printf("format:   v%d (ember %s)\n", header.FormatVersion, header.EmberVersion)
	if header.ModelName != "" {
		fmt.Printf("model:    %s\n", header.ModelName)
	}
	if !header.CreatedAt.IsZero() {
		fmt.Printf("created:  %s\n", header.CreatedAt.Format(time.RFC3339))
	}
	fmt.Printf("checksum: %s\n", header.Checksum)

	if len(header.Metadata) > 0 {
		fmt.Println("\nmetadata:")
		keys := make([]string, 0, len(header.Metadata))
		for k := range header.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s: %s\n", k, header.Metadata[k])
		}
	}

	fmt.Printf("\ntensors (%d):\n", len(header.Entries))
	total := 0
	for _, e := range header.Entries {
		n := 1
		for _, d := range e.Shape {
			n *= d
		}
		total += n
		fmt.Printf("  %-40s %-8s %v\n", e.Path, e.DType, e.Shape)
	}
	fmt.Printf("\ntotal parameters: %d\n", total)

	if len(header.EmptyNodes) > 0 {
		fmt.Printf("\nempty nodes (%d):\n", len(header.EmptyNodes))
		for _, p := range header.EmptyNodes {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}
