// Command nova-web-grounding asks a Nova model for a trends forecast twice,
// once without and once with the web grounding system tool, and prints both
// answers for comparison.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	_ "github.com/joho/godotenv/autoload"

	"github.com/ar-codelabs/nova-web-grounding/bedrock"
	"github.com/ar-codelabs/nova-web-grounding/common/config"
	"github.com/ar-codelabs/nova-web-grounding/common/logger"
	"github.com/ar-codelabs/nova-web-grounding/common/random"
	"github.com/ar-codelabs/nova-web-grounding/grounding"
)

func main() {
	logger.SetupLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		logger.Logger.Error("trend query run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	logger.Logger.Info("starting trend query comparison",
		zap.String("run_id", random.GetUUID()),
		zap.String("region", config.AWSRegion),
		zap.String("model", config.TrendModel))

	client, err := bedrock.NewClient(ctx, bedrock.ClientOptions{
		Region:      config.AWSRegion,
		AccessKey:   config.BedrockAccessKey,
		SecretKey:   config.BedrockSecretKey,
		ReadTimeout: config.BedrockReadTimeout,
	})
	if err != nil {
		return errors.Wrap(err, "create bedrock client")
	}

	model := bedrock.ConvertModelID2CrossRegionProfile(ctx, config.TrendModel, client.Options().Region)

	runner, err := grounding.NewRunner(client, grounding.Options{
		Model:    model,
		Question: config.TrendQuestion,
		Out:      os.Stdout,
	})
	if err != nil {
		return errors.Wrap(err, "create runner")
	}

	return runner.Run(ctx)
}
