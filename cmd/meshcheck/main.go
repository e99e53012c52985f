// meshcheck - Triangle geometry inspector for glTF assets
// Prints vertex and face counts, surface area, bounds, and centroid for every
// file given, and flags zero-area faces.
//
// Exits nonzero if any file fails to load or contains degenerate triangles,
// so it can gate asset pipelines.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/eatspaint/raybase/pkg/meshcheck"
)

var listDegenerate = flag.Bool("degenerate", false, "List the face index of every zero-area triangle")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "meshcheck - Triangle geometry inspector for glTF assets\n\n")
		fmt.Fprintf(os.Stderr, "Usage: meshcheck [options] <model.glb|model.gltf> [more files]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	failed := false
	for _, path := range flag.Args() {
		stats, err := meshcheck.Check(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}

		report(stats)
		if len(stats.Degenerate) > 0 {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func report(stats *meshcheck.Stats) {
	fmt.Printf("%s\n", stats.Name)
	fmt.Printf("  vertices   %d\n", stats.Vertices)
	fmt.Printf("  triangles  %d\n", stats.Triangles)
	fmt.Printf("  area       %.4f\n", stats.Area)
	fmt.Printf("  bounds     %s to %s\n", stats.Min, stats.Max)
	fmt.Printf("  centroid   %s\n", stats.Centroid)

	if n := len(stats.Degenerate); n > 0 {
		fmt.Printf("  degenerate %d zero-area faces\n", n)
		if *listDegenerate {
			for _, i := range stats.Degenerate {
				fmt.Printf("    face %d\n", i)
			}
		}
	}
}
