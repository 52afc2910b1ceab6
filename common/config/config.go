package config

import (
	"strings"
	"time"

	"github.com/ar-codelabs/nova-web-grounding/common/env"
)

var (
	// DebugEnabled toggles verbose structured logging when DEBUG=true.
	DebugEnabled = env.Bool("DEBUG", false)

	// AWSRegion selects the Bedrock region for every remote call.
	AWSRegion = strings.TrimSpace(env.String("AWS_REGION", "us-east-1"))

	// BedrockAccessKey overrides the default AWS credential chain with a static
	// access key when set together with BedrockSecretKey. Leave both empty to use
	// the standard chain (AWS_ACCESS_KEY_ID, shared profiles, instance roles).
	BedrockAccessKey = strings.TrimSpace(env.String("BEDROCK_ACCESS_KEY", ""))
	// BedrockSecretKey supplies the static secret key paired with BedrockAccessKey.
	BedrockSecretKey = strings.TrimSpace(env.String("BEDROCK_SECRET_KEY", ""))

	// BedrockReadTimeout bounds a single grounding round trip (seconds); grounded
	// replies can take minutes while the service searches the web.
	BedrockReadTimeout = time.Second * time.Duration(env.Int("BEDROCK_READ_TIMEOUT", 3600))

	// TrendModel is the base text model asked for the trends forecast. It is
	// converted to a cross-region inference profile before use.
	TrendModel = env.String("TREND_MODEL", "amazon.nova-2-lite-v1:0")
	// TrendQuestion is the user message sent on both grounding calls.
	TrendQuestion = env.String("TREND_QUESTION", "Search Google Trends for the latest trends for January 2026. Top 10 topics.")

	// BannerModel generates the banner image through the Converse API. It is
	// converted to a cross-region inference profile before use.
	BannerModel = env.String("BANNER_MODEL", "amazon.nova-2-omni-v1:0")
	// CanvasModel runs outpainting through the InvokeModel API. Canvas is not
	// cross-region eligible, so the id is used as-is.
	CanvasModel = env.String("CANVAS_MODEL", "amazon.nova-canvas-v1:0")

	// BannerReadTimeout bounds a single image-generation round trip (seconds).
	BannerReadTimeout = time.Second * time.Duration(env.Int("BANNER_READ_TIMEOUT", 600))

	// BannerWidth is the target banner width in pixels.
	BannerWidth = env.Int("BANNER_WIDTH", 3072)
	// BannerHeight is the target banner height in pixels.
	BannerHeight = env.Int("BANNER_HEIGHT", 1024)

	// BannerStrategy selects the ratio correction applied when the model returns
	// the wrong size: "outpaint" extends the sides with Nova Canvas, "stretch"
	// resizes locally without any remote call.
	BannerStrategy = strings.TrimSpace(env.String("BANNER_STRATEGY", "outpaint"))

	// BannerPrompt overrides the built-in cityscape scene prompt when non-empty.
	BannerPrompt = strings.TrimSpace(env.String("BANNER_PROMPT", ""))

	// BannerOutpaintPrompt overrides the built-in outpainting prompt when
	// non-empty. Set this together with BannerPrompt so the extension matches
	// the custom scene.
	BannerOutpaintPrompt = strings.TrimSpace(env.String("BANNER_OUTPAINT_PROMPT", ""))

	// BannerOutputDir receives the generated PNG files.
	BannerOutputDir = env.String("BANNER_OUTPUT_DIR", ".")

	// BannerMaxTokens caps the tokens requested by the image-generation call.
	BannerMaxTokens = env.Int("BANNER_MAX_TOKENS", 4096)
)
