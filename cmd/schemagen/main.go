package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hassmqtt/schemagen/pkg/extractor"
	"github.com/hassmqtt/schemagen/pkg/generator"
	"github.com/hassmqtt/schemagen/pkg/model"
	"github.com/hassmqtt/schemagen/pkg/types"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	// Execute root command
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "schemagen",
		Short: "Home Assistant MQTT schema generator",
		Long: `schemagen derives machine-readable schemas from the Home Assistant
MQTT integration documentation.

It reads the configuration blocks embedded in the integration markdown
files and emits:
  - OpenAPI YAML schema fragments, one per integration
  - Statically typed Go entity models and device-class enumerations`,
		Version: fmt.Sprintf("%s (built: %s)", version, buildTime),
	}

	rootCmd.AddCommand(newOpenAPICmd())
	rootCmd.AddCommand(newModelCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newOpenAPICmd() *cobra.Command {
	var (
		docsDir   string
		outputDir string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Generate OpenAPI schema fragments from integration docs",
		Long: `Generate OpenAPI schema fragments from integration docs.

Examples:
  # Generate fragments for every documented integration
  schemagen openapi -d ./documentation -o ./generated/openapi

  # Show per-fragment progress
  schemagen openapi -d ./documentation -o ./generated/openapi -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpenAPI(cmd.Context(), openAPIOptions{
				docsDir:   docsDir,
				outputDir: outputDir,
				verbose:   verbose,
			})
		},
	}

	cmd.Flags().StringVarP(&docsDir, "docs", "d", "", "Path to the integration documentation directory (required)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "./generated/openapi", "Output directory for the schema fragments")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	_ = cmd.MarkFlagRequired("docs")

	return cmd
}

type openAPIOptions struct {
	docsDir   string
	outputDir string
	verbose   bool
}

func runOpenAPI(ctx context.Context, opts openAPIOptions) error {
	if opts.verbose {
		fmt.Printf("Starting OpenAPI fragment generation...\n")
		fmt.Printf("Docs directory: %s\n", opts.docsDir)
		fmt.Printf("Output directory: %s\n", opts.outputDir)
	}

	ext := extractor.New(opts.docsDir)
	if err := ext.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := types.DefaultConfig()
	gen := generator.New(ext)
	if err := gen.Generate(cfg, generator.Options{
		OutputDir: opts.outputDir,
		Verbose:   opts.verbose,
	}); err != nil {
		return err
	}

	if opts.verbose {
		fmt.Printf("Done: %d fragments and %s\n", len(cfg.ActiveEntities()), generator.DefinitionsFile)
	}
	return nil
}

func newModelCmd() *cobra.Command {
	var (
		docsDir   string
		outputDir string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "model",
		Short: "Generate typed Go entity models from integration docs",
		Long: `Generate typed Go entity models from integration docs.

The output is two Go packages: entities/ with one source file per
integration plus the registration file, and mqtt/ with the device-class
enumerations.

Examples:
  # Generate the typed model
  schemagen model -d ./documentation -o ./generated`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModel(cmd.Context(), modelOptions{
				docsDir:   docsDir,
				outputDir: outputDir,
				verbose:   verbose,
			})
		},
	}

	cmd.Flags().StringVarP(&docsDir, "docs", "d", "", "Path to the integration documentation directory (required)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "./generated", "Output directory for the generated packages")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	_ = cmd.MarkFlagRequired("docs")

	return cmd
}

type modelOptions struct {
	docsDir   string
	outputDir string
	verbose   bool
}

func runModel(ctx context.Context, opts modelOptions) error {
	if opts.verbose {
		fmt.Printf("Starting typed model generation...\n")
		fmt.Printf("Docs directory: %s\n", opts.docsDir)
		fmt.Printf("Output directory: %s\n", opts.outputDir)
	}

	ext := extractor.New(opts.docsDir)
	if err := ext.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	gen, err := model.NewGenerator(ext)
	if err != nil {
		return err
	}

	cfg := types.DefaultConfig()
	if err := gen.Generate(cfg, model.Options{
		OutputDir: opts.outputDir,
		Verbose:   opts.verbose,
	}); err != nil {
		return err
	}

	if opts.verbose {
		fmt.Printf("Done: %d entities\n", len(cfg.ActiveEntities()))
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "schemagen version %s (built: %s)\n", version, buildTime)
		},
	}
}
