package analysis

import (
	"fmt"
	"strings"

	"veritas/internal/payload"
)

const claimInstructions = `You are a careful fact-checking assistant. Assess the claim or URL you are
given for truthfulness and possible misinformation, using the numbered search
results as evidence when they are provided. Only rely on information
reasonably supported by that evidence; never pretend certainty where there is
none.

Respond with a single JSON object containing:
- verdict: one of "true", "likely_true", "false", "likely_false", "mixed", "unclear"
- confidence: a number between 0 and 1
- summary: two or three sentences explaining the verdict
- signals: short bullet points citing the evidence behind the verdict
- caveats: short bullet points listing reasons to distrust the verdict
- sources: URLs that informed the verdict

Calibrate confidence downward when evidence is weak or conflicting, and
prefer "unclear" or "mixed" over false certainty. If no usable sources exist
or the claim is too ambiguous to evaluate, use "unclear".`

const mediaInstructions = `You are an expert in media forensics. Examine the supplied material for signs
of AI generation, compositing, or other manipulation. Be careful and avoid
over-claiming; if the evidence is weak, keep confidence low.

Respond with a single JSON object containing:
- verdict: one of "real", "likely_real", "ai_generated", "deepfake", "unclear"
- confidence: a number between 0 and 1
- summary: two or three sentences explaining the verdict
- signals: short bullet points describing the forensic evidence observed
- caveats: short bullet points listing the limits of this analysis
- search_query: one short web search that could corroborate or refute the material's claimed origin, or omit it if none would help`

const (
	deepDepth    = "Do a deeper reasoning pass and weigh multiple possibilities before deciding."
	conciseDepth = "Give a concise answer."
)

// claimPrompt assembles the user content for text analysis: the depth
// directive, the inputs under examination, and numbered evidence lines.
func claimPrompt(req *payload.AnalysisRequest, results []SearchResult) string {
	var b strings.Builder

	b.WriteString(depthDirective(req))
	b.WriteString("\n\n")

	if req.Claim != "" {
		fmt.Fprintf(&b, "Claim to verify:\n\"\"\"%s\"\"\"\n\n", req.Claim)
	}

	if req.URL != "" {
		fmt.Fprintf(&b, "URL to inspect:\n%s\n\n", req.URL)
	}

	if req.ExtraContext != "" {
		fmt.Fprintf(&b, "Additional context from the requester:\n%s\n\n", req.ExtraContext)
	}

	b.WriteString("Search results for context:\n")

	if len(results) == 0 {
		b.WriteString("No search results were found or search is not configured.\n")
		return b.String()
	}

	for i, result := range results {
		fmt.Fprintf(&b, "[%d] %s - %s (%s)\n", i+1, result.Title, result.Snippet, result.URL)
	}

	return b.String()
}

func imagePrompt(req *payload.AnalysisRequest) string {
	var b strings.Builder

	b.WriteString("Analyze this image for signs of AI generation, editing, or manipulation.\n")
	writeMediaContext(&b, req)

	return b.String()
}

// videoPrompt makes the frame relationship explicit so the model treats the
// attached images as one video rather than independent photographs.
func videoPrompt(req *payload.AnalysisRequest, frameCount int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The following %d images are frames sampled in order from a single video; they are not independent images. Analyze them for signs of AI generation, deepfake artifacts, or obvious editing.\n", frameCount)
	writeMediaContext(&b, req)

	return b.String()
}

func writeMediaContext(b *strings.Builder, req *payload.AnalysisRequest) {
	if req.Claim != "" {
		fmt.Fprintf(b, "\nThe uploader claims: %s\n", req.Claim)
	}

	if req.ExtraContext != "" {
		fmt.Fprintf(b, "\nAdditional context from the requester: %s\n", req.ExtraContext)
	}

	if req.Deep {
		fmt.Fprintf(b, "\n%s\n", deepDepth)
	}
}

func depthDirective(req *payload.AnalysisRequest) string {
	if req.Deep {
		return deepDepth
	}

	return conciseDepth
}
