package stepz

import (
	"io"
	"strings"
)

// PipelineToText builds and returns the pipeline's full recursive
// description as a single string. It has no side effects on the pipeline or
// any Context.
func PipelineToText(p *Pipeline) string {
	var b strings.Builder
	p.Describe(&b, 0)
	return b.String()
}

// FprintPipeline writes the pipeline's description to w.
func FprintPipeline(w io.Writer, p *Pipeline) error {
	_, err := io.WriteString(w, PipelineToText(p))
	return err
}
