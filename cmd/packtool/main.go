// Command packtool packs a cargo manifest offline and writes an HTML stowage
// plan, without going through the HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/stowage-io/stowage/internal/config"
	"github.com/stowage-io/stowage/internal/logging"
	"github.com/stowage-io/stowage/internal/manifest"
	"github.com/stowage-io/stowage/internal/packing"
	"github.com/stowage-io/stowage/internal/render"
	"github.com/stowage-io/stowage/internal/storage"
)

func main() {
	_ = godotenv.Load()

	kingpinApp := kingpin.New("packtool", "Packs an xlsx cargo manifest and writes an HTML stowage plan")
	manifestPath := kingpinApp.Flag("manifest", "Path to the xlsx cargo manifest").Required().String()
	outputPath := kingpinApp.Flag("output", "Path of the HTML plan to write").Default("plan.html").String()
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	minSupportFlag := kingpinApp.Flag("min-support-ratio", "Minimum fraction of an item base that must rest on support").Default("-1").Float64()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}
	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}
	if *minSupportFlag >= 0 {
		overrides.MinSupportRatio = minSupportFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(cfg, logger, *manifestPath, *outputPath); err != nil {
		logger.Fatal("packtool failed", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger, manifestPath, outputPath string) error {
	table, err := storage.BuildTable(cfg.SegregationRules)
	if err != nil {
		return fmt.Errorf("segregation rules: %w", err)
	}

	m, err := manifest.Load(manifestPath, table)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	logger.Info("manifest loaded",
		zap.String("path", manifestPath),
		zap.Int("items", len(m.Items)),
		zap.Int("containers", len(m.Containers)),
	)

	packer := packing.New(packing.WithMinSupportRatio(cfg.MinSupportRatio))
	results, err := packer.Pack(m.Items, m.Containers)
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}

	runID := uuid.NewString()
	packed, unfit := 0, 0
	for _, res := range results {
		if res.Placed {
			packed++
			continue
		}
		unfit++
		logger.Warn("item could not be stowed",
			zap.String("item", res.Item.Name()),
			zap.Int("instance", res.Instance),
			zap.String("reason", string(res.Reason)),
		)
	}
	logger.Info("pack run completed",
		zap.String("run_id", runID),
		zap.Int("packed", packed),
		zap.Int("unfit", unfit),
	)

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		_ = out.Close()
	}()

	if err := render.WriteHTML(out, runID, m.Containers); err != nil {
		return fmt.Errorf("render plan: %w", err)
	}
	logger.Info("stowage plan written", zap.String("path", outputPath))
	return nil
}
