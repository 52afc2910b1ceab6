package grounding

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Laisky/errors/v2"
)

// sectionRuleWidth is the width of the rule printed under section titles.
const sectionRuleWidth = 50

// Renderer writes the comparison output. Only response-derived bytes go
// through it; diagnostics belong on the logger, so identical responses
// always render to identical bytes.
type Renderer struct {
	out io.Writer
}

// NewRenderer returns a Renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Section writes a section title underlined with a rule.
func (r *Renderer) Section(title string) error {
	if _, err := fmt.Fprintf(r.out, "%s\n%s\n", title, strings.Repeat("=", sectionRuleWidth)); err != nil {
		return errors.Wrap(err, "write section header")
	}

	return nil
}

// Blank writes an empty separator line.
func (r *Renderer) Blank() error {
	if _, err := io.WriteString(r.out, "\n"); err != nil {
		return errors.Wrap(err, "write separator")
	}

	return nil
}

// Ungrounded writes the plain answer text followed by the raw response body.
func (r *Renderer) Ungrounded(output *Output) error {
	if _, err := fmt.Fprintf(r.out, "%s\n", output.Text()); err != nil {
		return errors.Wrap(err, "write answer")
	}

	return r.fullResponse(output)
}

// Grounded writes the cited answer text followed by the raw response body.
func (r *Renderer) Grounded(output *Output) error {
	if _, err := fmt.Fprintf(r.out, "%s\n", output.GroundedText()); err != nil {
		return errors.Wrap(err, "write answer")
	}

	return r.fullResponse(output)
}

func (r *Renderer) fullResponse(output *Output) error {
	raw, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal response")
	}

	if _, err := fmt.Fprintf(r.out, "\nFull Response:\n%s\n", raw); err != nil {
		return errors.Wrap(err, "write response body")
	}

	return nil
}
