// Command banner generates a wide hero banner with Nova 2 Omni and corrects
// its aspect ratio to the configured target size.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	_ "github.com/joho/godotenv/autoload"
	"github.com/olekukonko/tablewriter"

	"github.com/ar-codelabs/nova-web-grounding/banner"
	"github.com/ar-codelabs/nova-web-grounding/bedrock"
	"github.com/ar-codelabs/nova-web-grounding/common/config"
	"github.com/ar-codelabs/nova-web-grounding/common/logger"
	"github.com/ar-codelabs/nova-web-grounding/common/random"
)

func main() {
	logger.SetupLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		logger.Logger.Error("banner run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	logger.Logger.Info("starting banner generation",
		zap.String("run_id", random.GetUUID()),
		zap.String("region", config.AWSRegion),
		zap.String("model", config.BannerModel),
		zap.Int("width", config.BannerWidth),
		zap.Int("height", config.BannerHeight),
		zap.String("strategy", config.BannerStrategy))

	client, err := bedrock.NewClient(ctx, bedrock.ClientOptions{
		Region:      config.AWSRegion,
		AccessKey:   config.BedrockAccessKey,
		SecretKey:   config.BedrockSecretKey,
		ReadTimeout: config.BannerReadTimeout,
	})
	if err != nil {
		return errors.Wrap(err, "create bedrock client")
	}

	region := client.Options().Region
	pipeline, err := banner.NewPipeline(client, banner.Options{
		Model:          bedrock.ConvertModelID2CrossRegionProfile(ctx, config.BannerModel, region),
		CanvasModel:    bedrock.ConvertModelID2CrossRegionProfile(ctx, config.CanvasModel, region),
		Width:          config.BannerWidth,
		Height:         config.BannerHeight,
		MaxTokens:      int32(config.BannerMaxTokens),
		Strategy:       banner.Strategy(config.BannerStrategy),
		Prompt:         config.BannerPrompt,
		OutpaintPrompt: config.BannerOutpaintPrompt,
		OutputDir:      config.BannerOutputDir,
	})
	if err != nil {
		return errors.Wrap(err, "create pipeline")
	}

	artifacts, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	printSummary(os.Stdout, artifacts)

	return nil
}

// printSummary renders the produced files as a table.
func printSummary(out io.Writer, artifacts []banner.Artifact) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"File", "Width", "Height", "Ratio", "Stage"})
	for _, artifact := range artifacts {
		table.Append([]string{
			artifact.Path,
			strconv.Itoa(artifact.Width),
			strconv.Itoa(artifact.Height),
			fmt.Sprintf("%.2f:1", artifact.Ratio()),
			artifact.Stage,
		})
	}
	table.Render()
}
