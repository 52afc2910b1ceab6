package grounding

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Laisky/errors/v2"

	. "github.com/smartystreets/goconvey/convey"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestRendererLayout(t *testing.T) {
	Convey("Given a renderer over a buffer", t, func() {
		buf := &bytes.Buffer{}
		r := NewRenderer(buf)

		Convey("Section writes the title over a rule line", func() {
			So(r.Section("With Web Grounding"), ShouldBeNil)
			So(buf.String(), ShouldEqual, "With Web Grounding\n"+strings.Repeat("=", 50)+"\n")
		})

		Convey("Blank writes a single empty line", func() {
			So(r.Blank(), ShouldBeNil)
			So(buf.String(), ShouldEqual, "\n")
		})

		Convey("Ungrounded writes the answer then the raw body", func() {
			text := "plain answer"
			out := &Output{Message: Message{
				Role:    "assistant",
				Content: []ContentBlock{{Text: &text}},
			}}

			So(r.Ungrounded(out), ShouldBeNil)

			rendered := buf.String()
			So(rendered, ShouldStartWith, "plain answer\n\nFull Response:\n{")
			So(rendered, ShouldContainSubstring, `"text": "plain answer"`)
			So(rendered, ShouldEndWith, "}\n")
		})

		Convey("Grounded appends citation URLs to the answer", func() {
			out := &Output{Message: Message{
				Role: "assistant",
				Content: []ContentBlock{
					{CitationsContent: &CitationsContent{
						Content: []GeneratedContent{{Text: "cited span"}},
						Citations: []Citation{
							{Location: &CitationLocation{Web: &WebLocation{URL: "https://example.com/src"}}},
						},
					}},
				},
			}}

			So(r.Grounded(out), ShouldBeNil)
			So(buf.String(), ShouldStartWith, "cited span [https://example.com/src]\n\nFull Response:\n{")
		})
	})

	Convey("Given a renderer over a broken writer", t, func() {
		r := NewRenderer(failingWriter{})

		Convey("every write surfaces the sink error", func() {
			So(r.Section("x"), ShouldNotBeNil)
			So(r.Blank(), ShouldNotBeNil)
			So(r.Ungrounded(&Output{}), ShouldNotBeNil)
			So(r.Grounded(&Output{}), ShouldNotBeNil)
		})
	})
}
