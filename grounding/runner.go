package grounding

import (
	"context"
	"io"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/go-playground/validator/v10"

	"github.com/ar-codelabs/nova-web-grounding/common/helper"
	"github.com/ar-codelabs/nova-web-grounding/common/logger"
)

// GroundingToolName is the system tool that enables web retrieval on the
// Nova 2 model family.
const GroundingToolName = "nova_grounding"

// Section titles for the two halves of the comparison.
const (
	sectionWithoutGrounding = "Without Web Grounding"
	sectionWithGrounding    = "With Web Grounding"
)

var validate = validator.New()

// ConverseAPI is the slice of the Bedrock runtime client the runner needs.
type ConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// Options configure a Runner.
type Options struct {
	// Model is the model ID or cross-region inference profile to converse with.
	Model string `validate:"required"`
	// Question is the single user turn sent on both calls.
	Question string `validate:"required"`
	// MaxTokens caps the response length. Zero keeps the service default.
	MaxTokens int32 `validate:"gte=0"`
	// Out receives the rendered comparison.
	Out io.Writer `validate:"required"`
}

// Runner asks the same question twice, once without and once with the web
// grounding tool, and renders both answers. The two calls run strictly in
// order and the first failure stops the run.
type Runner struct {
	client ConverseAPI
	opts   Options
	render *Renderer
}

// NewRunner validates opts and builds a Runner on top of client.
func NewRunner(client ConverseAPI, opts Options) (*Runner, error) {
	if client == nil {
		return nil, errors.New("client is required")
	}
	if err := validate.Struct(opts); err != nil {
		return nil, errors.Wrap(err, "validate runner options")
	}

	return &Runner{
		client: client,
		opts:   opts,
		render: NewRenderer(opts.Out),
	}, nil
}

// Run executes the comparison: the ungrounded ask first, then the grounded
// one. It never starts the second call after the first fails.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.WithoutGrounding(ctx); err != nil {
		return err
	}

	if err := r.render.Blank(); err != nil {
		return err
	}

	return r.WithGrounding(ctx)
}

// WithoutGrounding asks the question with no tools attached and renders
// the answer.
func (r *Runner) WithoutGrounding(ctx context.Context) error {
	if err := r.render.Section(sectionWithoutGrounding); err != nil {
		return err
	}

	start := time.Now()
	resp, err := r.client.Converse(ctx, r.buildInput(false))
	if err != nil {
		return errors.Wrap(err, "converse without grounding")
	}
	r.logUsage("without_grounding", resp, start)

	return r.render.Ungrounded(FromConverseOutput(resp))
}

// WithGrounding asks the same question with the web grounding system tool
// attached and renders the cited answer.
func (r *Runner) WithGrounding(ctx context.Context) error {
	if err := r.render.Section(sectionWithGrounding); err != nil {
		return err
	}

	start := time.Now()
	resp, err := r.client.Converse(ctx, r.buildInput(true))
	if err != nil {
		return errors.Wrap(err, "converse with grounding")
	}
	r.logUsage("with_grounding", resp, start)

	return r.render.Grounded(FromConverseOutput(resp))
}

// buildInput assembles the Converse request. Both calls share the same
// message; the grounded one additionally attaches the system tool.
func (r *Runner) buildInput(grounded bool) *bedrockruntime.ConverseInput {
	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(r.opts.Model),
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: r.opts.Question},
				},
			},
		},
	}

	if r.opts.MaxTokens > 0 {
		input.InferenceConfig = &types.InferenceConfiguration{
			MaxTokens: aws.Int32(r.opts.MaxTokens),
		}
	}

	if grounded {
		input.ToolConfig = &types.ToolConfiguration{
			Tools: []types.Tool{
				&types.ToolMemberSystemTool{
					Value: types.SystemTool{Name: aws.String(GroundingToolName)},
				},
			},
		}
	}

	return input
}

func (r *Runner) logUsage(stage string, resp *bedrockruntime.ConverseOutput, start time.Time) {
	fields := []zap.Field{
		zap.String("stage", stage),
		zap.String("model", r.opts.Model),
		zap.Int64("elapsed_ms", helper.CalcElapsedTime(start)),
		zap.String("stop_reason", string(resp.StopReason)),
	}

	if usage := resp.Usage; usage != nil {
		if usage.InputTokens != nil {
			fields = append(fields, zap.Int32("input_tokens", *usage.InputTokens))
		}
		if usage.OutputTokens != nil {
			fields = append(fields, zap.Int32("output_tokens", *usage.OutputTokens))
		}
		if usage.TotalTokens != nil {
			fields = append(fields, zap.Int32("total_tokens", *usage.TotalTokens))
		}
	}

	logger.Logger.Info("converse finished", fields...)
}
