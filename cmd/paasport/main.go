package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/paasport/paasport/internal/core/descriptor"
	"github.com/paasport/paasport/internal/core/plan"
	"github.com/paasport/paasport/internal/shell/render"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess         = 0
	ExitUsageError      = 1
	ExitConfigError     = 2
	ExitLoadError       = 3
	ExitValidationError = 4
	ExitResolutionError = 5
	ExitRenderError     = 6
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to tool config file")
	overwrite := flag.Bool("overwrite", false, "Overwrite existing artifact files")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Usage = usage
	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("paasport %s (built %s)\n", Version, BuildTime)
		return ExitSuccess
	}

	args := flag.Args()
	if len(args) != 2 {
		usage()
		return ExitUsageError
	}
	descriptorPath, projectRoot := args[0], args[1]

	// Load tool configuration
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return ExitConfigError
	}
	if *overwrite {
		cfg.Render.Overwrite = true
	}

	// Setup logger
	logger := SetupLogger(cfg).With("run_id", uuid.New().String()[:8])
	logger.Info("generating deployment config",
		"version", Version,
		"descriptor", descriptorPath,
		"root", projectRoot,
	)

	// Load the descriptor
	raw, err := os.ReadFile(descriptorPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read descriptor: %v\n", err)
		return ExitLoadError
	}

	app, err := descriptor.Load(string(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load %s: %v\n", descriptorPath, err)
		return ExitLoadError
	}

	app = descriptor.ApplyEnvironmentDefaults(app)

	// Validate. Every problem is reported before exiting so the descriptor
	// can be fixed in one edit cycle.
	if err := descriptor.Validate(app); err != nil {
		var validationErr *descriptor.ValidationError
		if errors.As(err, &validationErr) {
			for _, problem := range validationErr.Problems {
				fmt.Fprintf(os.Stderr, "error: %s\n", problem)
			}
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		return ExitValidationError
	}

	// Resolve and derive instructions
	configs, err := plan.Resolve(app)
	if err != nil {
		logger.Error("internal resolution failure", "error", err)
		fmt.Fprintf(os.Stderr, "internal error: %v\n", err)
		return ExitResolutionError
	}
	instructions := plan.BuildInstructions(configs)

	// Write artifacts, then the instruction list
	renderer := render.NewRenderer(projectRoot, cfg.Render.Overwrite, logger)
	if err := renderer.WriteArtifacts(configs); err != nil {
		logger.Error("failed to write artifacts", "error", err)
		fmt.Fprintf(os.Stderr, "cannot write artifacts: %v\n", err)
		return ExitRenderError
	}

	if err := render.WriteInstructions(os.Stdout, instructions); err != nil {
		return ExitRenderError
	}

	logger.Info("done",
		"services", len(app.Services),
		"configs", len(configs),
		"instructions", len(instructions),
	)
	return ExitSuccess
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: paasport [flags] <descriptor-path> <project-root-path>")
	flag.PrintDefaults()
}
