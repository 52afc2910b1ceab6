package grounding

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/require"
)

func textResponse(text string) *bedrockruntime.ConverseOutput {
	return &bedrockruntime.ConverseOutput{
		Output: &types.ConverseOutputMemberMessage{
			Value: types.Message{
				Role: types.ConversationRoleAssistant,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: text},
				},
			},
		},
		StopReason: types.StopReasonEndTurn,
	}
}

func citedResponse() *bedrockruntime.ConverseOutput {
	return &bedrockruntime.ConverseOutput{
		Output: &types.ConverseOutputMemberMessage{
			Value: types.Message{
				Role: types.ConversationRoleAssistant,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: "Top trends for January 2026:\n"},
					&types.ContentBlockMemberCitationsContent{
						Value: types.CitationsContentBlock{
							Content: []types.CitationGeneratedContent{
								&types.CitationGeneratedContentMemberText{Value: "1. Quantum laptops"},
							},
							Citations: []types.Citation{
								{
									Title: aws.String("Google Trends"),
									SourceContent: []types.CitationSourceContent{
										&types.CitationSourceContentMemberText{Value: "quantum laptop searches surged"},
									},
									Location: &types.CitationLocationMemberWeb{
										Value: types.WebLocation{Url: aws.String("https://trends.google.com/q1")},
									},
								},
							},
						},
					},
					&types.ContentBlockMemberText{Value: "\nMore to come."},
				},
			},
		},
		StopReason: types.StopReasonEndTurn,
	}
}

func TestFromConverseOutputText(t *testing.T) {
	out := FromConverseOutput(textResponse("hello trends"))

	require.Equal(t, "assistant", out.Message.Role)
	require.Len(t, out.Message.Content, 1)
	require.NotNil(t, out.Message.Content[0].Text)
	require.Equal(t, "hello trends", *out.Message.Content[0].Text)
	require.Equal(t, "hello trends", out.Text())
}

func TestFromConverseOutputNil(t *testing.T) {
	out := FromConverseOutput(nil)
	require.Empty(t, out.Message.Content)
	require.Empty(t, out.Text())

	out = FromConverseOutput(&bedrockruntime.ConverseOutput{})
	require.Empty(t, out.Message.Content)
}

func TestFromConverseOutputCitations(t *testing.T) {
	out := FromConverseOutput(citedResponse())

	require.Len(t, out.Message.Content, 3)

	cited := out.Message.Content[1].CitationsContent
	require.NotNil(t, cited)
	require.Len(t, cited.Content, 1)
	require.Equal(t, "1. Quantum laptops", cited.Content[0].Text)

	require.Len(t, cited.Citations, 1)
	citation := cited.Citations[0]
	require.Equal(t, "Google Trends", citation.Title)
	require.Len(t, citation.SourceContent, 1)
	require.Equal(t, "quantum laptop searches surged", citation.SourceContent[0].Text)
	require.Equal(t, "https://trends.google.com/q1", citation.WebURL())
}

func TestTextSkipsCitationBlocks(t *testing.T) {
	out := FromConverseOutput(citedResponse())
	require.Equal(t, "Top trends for January 2026:\n\nMore to come.", out.Text())
}

func TestGroundedTextInterleavesURLs(t *testing.T) {
	out := FromConverseOutput(citedResponse())

	expected := "Top trends for January 2026:\n" +
		"1. Quantum laptops [https://trends.google.com/q1]" +
		"\nMore to come."
	require.Equal(t, expected, out.GroundedText())
}

func TestGroundedTextURLOncePerOccurrence(t *testing.T) {
	span := func(text, url string) ContentBlock {
		return ContentBlock{CitationsContent: &CitationsContent{
			Content: []GeneratedContent{{Text: text}},
			Citations: []Citation{
				{Location: &CitationLocation{Web: &WebLocation{URL: url}}},
			},
		}}
	}

	out := &Output{Message: Message{
		Role: "assistant",
		Content: []ContentBlock{
			span("first", "https://a.example/1"),
			span("second", "https://b.example/2"),
			span("third", "https://a.example/1"),
		},
	}}

	rendered := out.GroundedText()
	require.Equal(t, 2, strings.Count(rendered, " [https://a.example/1]"))
	require.Equal(t, 1, strings.Count(rendered, " [https://b.example/2]"))
}

func TestGroundedTextSkipsNonWebCitations(t *testing.T) {
	out := &Output{Message: Message{
		Role: "assistant",
		Content: []ContentBlock{
			{CitationsContent: &CitationsContent{
				Content:   []GeneratedContent{{Text: "uncited span"}},
				Citations: []Citation{{Title: "offline source"}},
			}},
		},
	}}

	require.Equal(t, "uncited span", out.GroundedText())
}

func TestOutputMarshalsReadableJSON(t *testing.T) {
	raw, err := json.MarshalIndent(FromConverseOutput(citedResponse()), "", "  ")
	require.NoError(t, err)

	body := string(raw)
	require.Contains(t, body, `"role": "assistant"`)
	require.Contains(t, body, `"citationsContent"`)
	require.Contains(t, body, `"url": "https://trends.google.com/q1"`)

	raw, err = json.MarshalIndent(FromConverseOutput(textResponse("plain")), "", "  ")
	require.NoError(t, err)
	require.NotContains(t, string(raw), "citationsContent")
}
