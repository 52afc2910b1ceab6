// Package grounding asks a Bedrock model the same question twice, once
// without and once with the web grounding system tool, and renders both
// answers for comparison.
package grounding

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// Output mirrors the Converse response body in a form that marshals into
// readable JSON. The SDK models content blocks as closed union interfaces,
// so dumping the response struct directly yields nothing useful.
type Output struct {
	Message Message `json:"message"`
}

// Message is the assistant turn returned by the model.
type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock is one entry of the assistant message. Exactly one field is
// set per block.
type ContentBlock struct {
	Text             *string           `json:"text,omitempty"`
	CitationsContent *CitationsContent `json:"citationsContent,omitempty"`
}

// CitationsContent carries a cited span of the answer together with the
// web sources backing it.
type CitationsContent struct {
	Content   []GeneratedContent `json:"content,omitempty"`
	Citations []Citation         `json:"citations,omitempty"`
}

// GeneratedContent is a piece of model text covered by the block's citations.
type GeneratedContent struct {
	Text string `json:"text,omitempty"`
}

// Citation names one retrieved source.
type Citation struct {
	Title         string            `json:"title,omitempty"`
	SourceContent []SourceContent   `json:"sourceContent,omitempty"`
	Location      *CitationLocation `json:"location,omitempty"`
}

// SourceContent is an excerpt of the retrieved document.
type SourceContent struct {
	Text string `json:"text,omitempty"`
}

// CitationLocation points at where the cited material lives.
type CitationLocation struct {
	Web *WebLocation `json:"web,omitempty"`
}

// WebLocation is a citation source on the public web.
type WebLocation struct {
	URL string `json:"url,omitempty"`
}

// FromConverseOutput flattens the SDK union types into the printable form.
// Unknown content block kinds are skipped.
func FromConverseOutput(resp *bedrockruntime.ConverseOutput) *Output {
	out := &Output{}
	if resp == nil || resp.Output == nil {
		return out
	}

	message, ok := resp.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return out
	}

	out.Message.Role = string(message.Value.Role)
	for _, block := range message.Value.Content {
		switch v := block.(type) {
		case *types.ContentBlockMemberText:
			text := v.Value
			out.Message.Content = append(out.Message.Content, ContentBlock{Text: &text})
		case *types.ContentBlockMemberCitationsContent:
			out.Message.Content = append(out.Message.Content, ContentBlock{
				CitationsContent: convertCitationsBlock(v.Value),
			})
		}
	}

	return out
}

func convertCitationsBlock(block types.CitationsContentBlock) *CitationsContent {
	converted := &CitationsContent{}

	for _, gen := range block.Content {
		if text, ok := gen.(*types.CitationGeneratedContentMemberText); ok {
			converted.Content = append(converted.Content, GeneratedContent{Text: text.Value})
		}
	}

	for _, citation := range block.Citations {
		entry := Citation{Title: aws.ToString(citation.Title)}

		for _, src := range citation.SourceContent {
			if text, ok := src.(*types.CitationSourceContentMemberText); ok {
				entry.SourceContent = append(entry.SourceContent, SourceContent{Text: text.Value})
			}
		}

		if web, ok := citation.Location.(*types.CitationLocationMemberWeb); ok {
			entry.Location = &CitationLocation{
				Web: &WebLocation{URL: aws.ToString(web.Value.Url)},
			}
		}

		converted.Citations = append(converted.Citations, entry)
	}

	return converted
}

// Text returns the concatenated plain text blocks of the message.
func (o *Output) Text() string {
	var b strings.Builder
	for _, block := range o.Message.Content {
		if block.Text != nil {
			b.WriteString(*block.Text)
		}
	}

	return b.String()
}

// GroundedText returns the full answer text with each citation's web URL
// appended in brackets after the span it supports.
func (o *Output) GroundedText() string {
	var b strings.Builder
	for _, block := range o.Message.Content {
		if block.Text != nil {
			b.WriteString(*block.Text)
			continue
		}

		cited := block.CitationsContent
		if cited == nil {
			continue
		}

		for _, gen := range cited.Content {
			b.WriteString(gen.Text)
		}
		for _, citation := range cited.Citations {
			if url := citation.WebURL(); url != "" {
				b.WriteString(" [" + url + "]")
			}
		}
	}

	return b.String()
}

// WebURL returns the citation's web source URL, or empty string when the
// citation points somewhere else.
func (c *Citation) WebURL() string {
	if c.Location == nil || c.Location.Web == nil {
		return ""
	}

	return c.Location.Web.URL
}
