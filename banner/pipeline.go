// Package banner generates a wide hero banner with Nova 2 Omni and corrects
// its aspect ratio when the model ignores the requested size, either through
// Nova Canvas outpainting or a local stretch.
package banner

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/go-playground/validator/v10"

	"github.com/ar-codelabs/nova-web-grounding/common/helper"
	imageutil "github.com/ar-codelabs/nova-web-grounding/common/image"
	"github.com/ar-codelabs/nova-web-grounding/common/logger"
)

// Strategy selects how a wrong-sized generation is corrected.
type Strategy string

const (
	// StrategyOutpaint extends the scene sideways with Nova Canvas.
	StrategyOutpaint Strategy = "outpaint"
	// StrategyStretch stretches the image to the target size locally.
	StrategyStretch Strategy = "stretch"
)

// Stages an artifact can come from.
const (
	StageNative     = "native"
	StageOriginal   = "original"
	StageOutpainted = "outpainted"
	StageStretched  = "stretched"
)

// Artifact filenames. The stretched result takes the final banner name
// since it replaces the native-size output.
const (
	bannerFilename     = "cityscape_banner_3x1_nova_omni.png"
	originalFilename   = "cityscape_banner_2x1_nova_omni_original.png"
	outpaintedFilename = "cityscape_banner_3x1_nova_canvas_outpaint.png"
)

var validate = validator.New()

// API is the slice of the Bedrock runtime client the pipeline needs.
type API interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Options configure a Pipeline.
type Options struct {
	// Model is the image generation model ID or inference profile.
	Model string `validate:"required"`
	// CanvasModel is the outpainting model, required for the outpaint
	// strategy.
	CanvasModel string `validate:"required_if=Strategy outpaint"`
	// Width and Height are the target banner size in pixels.
	Width  int `validate:"gt=0"`
	Height int `validate:"gt=0"`
	// MaxTokens caps the Converse response carrying the image.
	MaxTokens int32 `validate:"gt=0"`
	// Strategy picks the correction applied when the model returns a
	// different size than requested.
	Strategy Strategy `validate:"oneof=outpaint stretch"`
	// Prompt is the scene description. Empty selects the built-in scene.
	Prompt string
	// OutpaintPrompt guides the sideways extension. Empty selects the
	// built-in one matching the built-in scene.
	OutpaintPrompt string
	// OutputDir receives the image files. Empty means current directory.
	OutputDir string
}

// Artifact is one image written to disk.
type Artifact struct {
	Path   string
	Width  int
	Height int
	Stage  string
}

// Ratio returns the artifact's width-to-height aspect ratio.
func (a Artifact) Ratio() float64 {
	if a.Height == 0 {
		return 0
	}

	return float64(a.Width) / float64(a.Height)
}

// Pipeline generates the banner, verifies its size, corrects the ratio if
// needed, and saves every produced image.
type Pipeline struct {
	client API
	opts   Options
}

// NewPipeline validates opts and builds a Pipeline on top of client.
func NewPipeline(client API, opts Options) (*Pipeline, error) {
	if client == nil {
		return nil, errors.New("client is required")
	}
	if err := validate.Struct(opts); err != nil {
		return nil, errors.Wrap(err, "validate pipeline options")
	}

	if opts.Prompt == "" {
		opts.Prompt = DefaultScenePrompt
	}
	if opts.OutpaintPrompt == "" {
		opts.OutpaintPrompt = DefaultOutpaintPrompt
	}

	return &Pipeline{client: client, opts: opts}, nil
}

// Run executes the full pipeline and returns the saved artifacts in
// production order. A native-size generation yields a single artifact;
// otherwise the uncorrected original is saved alongside the corrected
// banner.
func (p *Pipeline) Run(ctx context.Context) ([]Artifact, error) {
	raw, err := p.generate(ctx)
	if err != nil {
		return nil, err
	}

	width, height, err := imageutil.Size(raw)
	if err != nil {
		return nil, errors.Wrap(err, "inspect generated image")
	}

	if width == p.opts.Width && height == p.opts.Height {
		logger.Logger.Info("model produced the target size natively",
			zap.Int("width", width), zap.Int("height", height))

		native, err := p.save(raw, bannerFilename, StageNative)
		if err != nil {
			return nil, err
		}

		return []Artifact{native}, nil
	}

	logger.Logger.Info("generated size differs from target, correcting",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("target_width", p.opts.Width),
		zap.Int("target_height", p.opts.Height),
		zap.String("strategy", string(p.opts.Strategy)))

	original, err := p.save(raw, originalFilename, StageOriginal)
	if err != nil {
		return nil, err
	}

	var corrected []byte
	var filename, stage string
	switch p.opts.Strategy {
	case StrategyOutpaint:
		corrected, err = p.outpaint(ctx, raw)
		filename, stage = outpaintedFilename, StageOutpainted
	case StrategyStretch:
		corrected, err = Stretch(raw, p.opts.Width, p.opts.Height)
		filename, stage = bannerFilename, StageStretched
	default:
		return nil, errors.Errorf("unknown strategy %q", p.opts.Strategy)
	}
	if err != nil {
		return nil, err
	}

	final, err := p.save(corrected, filename, stage)
	if err != nil {
		return nil, err
	}

	return []Artifact{original, final}, nil
}

// generate asks the Omni model for the banner and returns the bytes of the
// first image block in the response.
func (p *Pipeline) generate(ctx context.Context) ([]byte, error) {
	logger.Logger.Info("generating banner image",
		zap.String("model", p.opts.Model),
		zap.Int("width", p.opts.Width),
		zap.Int("height", p.opts.Height))

	start := time.Now()
	resp, err := p.client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(p.opts.Model),
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{
						Value: dimensionPrompt(p.opts.Prompt, p.opts.Width, p.opts.Height),
					},
				},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens: aws.Int32(p.opts.MaxTokens),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "converse for banner image")
	}

	message, ok := resp.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return nil, errors.New("response carries no message")
	}

	for _, block := range message.Value.Content {
		img, ok := block.(*types.ContentBlockMemberImage)
		if !ok {
			continue
		}

		source, ok := img.Value.Source.(*types.ImageSourceMemberBytes)
		if !ok {
			continue
		}

		if width, height, err := imageutil.Size(source.Value); err == nil {
			logger.Logger.Info("banner image generated",
				zap.Int("width", width),
				zap.Int("height", height),
				zap.Int64("elapsed_ms", helper.CalcElapsedTime(start)))
		}

		return source.Value, nil
	}

	return nil, errors.New("model returned no image block")
}

// save writes img as PNG under the output directory. An empty name gets a
// timestamped one.
func (p *Pipeline) save(img []byte, name, stage string) (Artifact, error) {
	if name == "" {
		name = "generated_image_" + helper.GetTimeString() + ".png"
	}

	format, err := imageutil.DetectFormat(img)
	if err != nil {
		return Artifact{}, errors.Wrap(err, "detect image format")
	}
	if format != "png" {
		decoded, err := imageutil.Decode(img)
		if err != nil {
			return Artifact{}, errors.Wrap(err, "decode image")
		}
		if img, err = imageutil.EncodePNG(decoded); err != nil {
			return Artifact{}, err
		}
	}

	width, height, err := imageutil.Size(img)
	if err != nil {
		return Artifact{}, errors.Wrap(err, "inspect image")
	}

	path := filepath.Join(p.opts.OutputDir, name)
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return Artifact{}, errors.Wrap(err, "write image file")
	}

	logger.Logger.Info("image saved",
		zap.String("path", path),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float64("aspect_ratio", float64(width)/float64(height)))

	return Artifact{Path: path, Width: width, Height: height, Stage: stage}, nil
}
