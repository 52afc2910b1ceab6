package bedrock

import (
	"context"
	"slices"

	"github.com/Laisky/zap"

	"github.com/ar-codelabs/nova-web-grounding/common/logger"
)

// RegionMapping maps AWS regions to their cross-region inference prefixes,
// ordered by preference. The first prefix with a matching profile wins.
var RegionMapping = map[string][]string{
	// US regions
	"us-east-1": {"us"},
	"us-east-2": {"us"},
	"us-west-2": {"us"},

	// US GovCloud regions
	"us-gov-east-1": {"us-gov"},
	"us-gov-west-1": {"us-gov"},

	// Canada and South America route through the US profiles
	"ca-central-1": {"us"},
	"sa-east-1":    {"us"},

	// EU regions
	"eu-west-1":    {"eu"},
	"eu-west-2":    {"eu"},
	"eu-west-3":    {"eu"},
	"eu-central-1": {"eu"},
	"eu-north-1":   {"eu"},

	// APAC regions. Japan and Australia prefer their dedicated prefixes
	// and fall back to the shared APAC profiles.
	"ap-northeast-1": {"jp", "apac"},
	"ap-southeast-1": {"apac"},
	"ap-southeast-2": {"au", "apac"},
	"ap-south-1":     {"apac"},
}

// CrossRegionInferences lists the inference profile IDs available to this
// project. Models without an entry here are invoked by their base ID.
//
// https://docs.aws.amazon.com/bedrock/latest/userguide/cross-region-inference-support.html
var CrossRegionInferences = []string{
	// Nova 2 models
	"us.amazon.nova-2-lite-v1:0",
	"us.amazon.nova-2-omni-v1:0",
	"eu.amazon.nova-2-lite-v1:0",
	"apac.amazon.nova-2-lite-v1:0",

	// Nova 1 models
	"us.amazon.nova-micro-v1:0",
	"us.amazon.nova-lite-v1:0",
	"us.amazon.nova-pro-v1:0",
	"us.amazon.nova-premier-v1:0",
	"eu.amazon.nova-micro-v1:0",
	"eu.amazon.nova-lite-v1:0",
	"eu.amazon.nova-pro-v1:0",
	"apac.amazon.nova-micro-v1:0",
	"apac.amazon.nova-lite-v1:0",
	"apac.amazon.nova-pro-v1:0",
}

// getRegionPrefix returns the preferred cross-region prefix for an AWS
// region, or empty string for unsupported regions.
func getRegionPrefix(region string) string {
	if prefixes, ok := RegionMapping[region]; ok && len(prefixes) > 0 {
		return prefixes[0]
	}

	return ""
}

// ConvertModelID2CrossRegionProfile converts a base model ID into the
// cross-region inference profile ID serving the given region.
//
// Some models only accept invocation through an inference profile like
// `us.amazon.nova-2-lite-v1:0` rather than the bare model ID. The region's
// prefixes are tried in preference order; if none of them yields a known
// profile the original model ID is returned unchanged, which also covers
// models such as Nova Canvas that are not cross-region eligible.
func ConvertModelID2CrossRegionProfile(ctx context.Context, model, region string) string {
	prefixes, ok := RegionMapping[region]
	if !ok {
		return model
	}

	for _, prefix := range prefixes {
		candidate := prefix + "." + model
		if slices.Contains(CrossRegionInferences, candidate) {
			logger.Logger.Debug("convert model to cross-region profile",
				zap.String("model", model),
				zap.String("region", region),
				zap.String("profile", candidate))
			return candidate
		}
	}

	return model
}
