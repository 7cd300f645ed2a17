package analysis

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"

	"veritas/internal/frames"
	"veritas/internal/payload"
	"veritas/internal/verdict"
)

// analyzeText verifies a claim or URL. Web search runs before the model so
// its results can ground the reasoning; search failures are absorbed and the
// model is consulted without external evidence.
func (d *Dispatcher) analyzeText(ctx context.Context, req *payload.AnalysisRequest) (*verdict.Report, error) {
	results := d.ground(ctx, req)

	raw, err := d.model.Complete(ctx, claimInstructions, []Content{
		TextContent(claimPrompt(req, results)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamAnalysis, err)
	}

	return verdict.Normalize(raw, verdict.KindClaim), nil
}

// analyzeImage assesses a single image for generation or manipulation
// artifacts, then runs the model's proposed follow-up search if it offered
// one.
func (d *Dispatcher) analyzeImage(ctx context.Context, req *payload.AnalysisRequest) (*verdict.Report, error) {
	data, mime := d.fitImage(req.Media)

	raw, err := d.model.Complete(ctx, mediaInstructions, []Content{
		TextContent(imagePrompt(req)),
		ImageContent(data, mime),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamAnalysis, err)
	}

	report := verdict.Normalize(raw, verdict.KindMedia)
	d.attachFollowUpSources(ctx, report)

	return report, nil
}

// analyzeVideo samples representative frames and sends them to the model as
// an ordered set. Sampling problems surface before any model call is made.
func (d *Dispatcher) analyzeVideo(ctx context.Context, req *payload.AnalysisRequest) (*verdict.Report, error) {
	set, err := d.sampler.Sample(ctx, req.Media, d.options.MaxFrames)
	if err != nil {
		return nil, err
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("%w: no sampled frame decoded", frames.ErrUnreadableMedia)
	}

	blocks := make([]Content, 0, len(set)+1)
	blocks = append(blocks, TextContent(videoPrompt(req, len(set))))

	for _, frame := range set {
		blocks = append(blocks, ImageContent(frame.Data, frame.MIME))
	}

	raw, err := d.model.Complete(ctx, mediaInstructions, blocks)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamAnalysis, err)
	}

	report := verdict.Normalize(raw, verdict.KindMedia)
	d.attachFollowUpSources(ctx, report)

	return report, nil
}

// ground performs the pre-model evidence search for text analysis, seeded by
// the claim or, when absent, the URL under inspection.
func (d *Dispatcher) ground(ctx context.Context, req *payload.AnalysisRequest) []SearchResult {
	if d.search == nil {
		return nil
	}

	query := req.Claim
	if query == "" {
		query = req.URL
	}

	if query == "" {
		return nil
	}

	return d.search.Search(ctx, query, d.options.SearchResults)
}

// attachFollowUpSources runs the model-proposed search query, if any, and
// appends the resulting URLs as candidate corroborating sources.
func (d *Dispatcher) attachFollowUpSources(ctx context.Context, report *verdict.Report) {
	if d.search == nil {
		return
	}

	query := verdict.ProposedQuery(report.Raw)
	if query == "" {
		return
	}

	for _, result := range d.search.Search(ctx, query, d.options.SearchResults) {
		report.Sources = append(report.Sources, result.URL)
	}
}

// fitImage bounds the artifact's dimensions before dispatch. Images the local
// decoder cannot read are sent unmodified; the model may still handle formats
// this process lacks codecs for.
func (d *Dispatcher) fitImage(media *payload.MediaBlob) ([]byte, string) {
	img, err := imaging.Decode(bytes.NewReader(media.Data))
	if err != nil {
		d.logger.Debug("image decode failed, sending original bytes", "error", err)
		return media.Data, media.ContentType
	}

	bound := d.options.MaxImageDimension
	if img.Bounds().Dx() <= bound && img.Bounds().Dy() <= bound {
		return media.Data, media.ContentType
	}

	fitted := imaging.Fit(img, bound, bound, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		d.logger.Debug("image re-encode failed, sending original bytes", "error", err)
		return media.Data, media.ContentType
	}

	return buf.Bytes(), "image/jpeg"
}
