// Command build_octree constructs an on-disk octree from a stream of
// points (§6's CLI collaborator surface). Flag names and defaults
// mirror the original's build_octree.rs clap definition exactly:
// --output_directory (required), --resolution (default "0.001"), and
// a required positional input file.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/hauke96/sigolo/v2"

	"github.com/googlecartographer/point-cloud-viewer/internal/ingest"
	"github.com/googlecartographer/point-cloud-viewer/pkg/builder"
	"github.com/googlecartographer/point-cloud-viewer/pkg/octree"
)

var cli struct {
	OutputDirectory string `help:"Output directory to write the octree into." required:"" name:"output_directory"`
	Resolution      string `help:"Minimal precision that this point cloud should have. This is, for example, used to decide how many bits to use to encode the position." default:"0.001"`
	Input           string `help:"PLY/PTS file to parse for the points." arg:""`
}

func main() {
	kong.Parse(&cli,
		kong.Name("build_octree"),
		kong.Description("Builds an octree from a point cloud file."),
	)

	meta, err := runBuild(cli.OutputDirectory, cli.Resolution, cli.Input)
	if err != nil {
		sigolo.Errorf("build failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("wrote octree with %d nodes to %s\n", len(meta.Nodes), cli.OutputDirectory)
}

// runBuild parses resolutionStr, opens inputPath twice (once per
// builder scan pass) and runs the full build pipeline, factored out of
// main so it can be exercised directly by tests without going through
// kong's flag parsing.
func runBuild(outputDir, resolutionStr, inputPath string) (*octree.Meta, error) {
	resolution, err := strconv.ParseFloat(resolutionStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid --resolution %q: %w", resolutionStr, err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	opts := builder.DefaultOptions()
	opts.Resolution = resolution
	opts.Progress = func(n int) {
		if n%1_000_000 == 0 {
			sigolo.Infof("assigned %d points", n)
		}
	}

	source := func() (ingest.PointIterator, error) {
		f, err := os.Open(inputPath)
		if err != nil {
			return nil, err
		}
		return ingest.NewTextPointIterator(f), nil
	}

	sigolo.Infof("building octree from %s into %s (resolution %g)", inputPath, outputDir, resolution)
	return builder.New(outputDir, source, opts).Build()
}
