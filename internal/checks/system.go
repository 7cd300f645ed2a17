// Package checks is the verification domain: it resolves tolerant wire input
// into a canonical analysis request, retains accepted media uploads, runs the
// analysis dispatcher, and shapes the service's response contracts.
package checks

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"

	"veritas/internal/analysis"
	"veritas/internal/payload"
	"veritas/internal/verdict"
	"veritas/pkg/storage"
)

// Input carries the decoded wire pieces of one verification request.
type Input struct {
	Body       payload.Body
	Query      url.Values
	Attachment *payload.Attachment
}

// System defines the public contract for verification operations.
type System interface {
	Handler(maxUploadSize int64, info ServiceInfo) *Handler

	Verify(ctx context.Context, input Input) (*VerifyResult, error)
	UniversalCheck(ctx context.Context, input Input) (*CheckResult, error)
}

// VerifyResult is the quick-check response: the report plus an echo of the
// inputs the normalizer settled on.
type VerifyResult struct {
	OK     bool            `json:"ok"`
	Input  EchoedInput     `json:"input"`
	Result *verdict.Report `json:"result"`
}

// EchoedInput reports the claim and URL extracted from the request; absent
// values serialize as null.
type EchoedInput struct {
	Claim *string `json:"claim"`
	URL   *string `json:"url"`
}

// CheckResult is the universal-check response: the report flattened
// alongside routing metadata. MediaKind and Source are set only on the
// media path.
type CheckResult struct {
	Status       string            `json:"status"`
	AnalysisType string            `json:"analysis_type"`
	MediaKind    payload.MediaKind `json:"media_kind,omitempty"`
	Source       string            `json:"source,omitempty"`
	*verdict.Report
}

type checks struct {
	dispatcher *analysis.Dispatcher
	storage    storage.System
	logger     *slog.Logger
}

// New creates the verification system backed by the given dispatcher and
// upload store.
func New(dispatcher *analysis.Dispatcher, store storage.System, logger *slog.Logger) System {
	return &checks{
		dispatcher: dispatcher,
		storage:    store,
		logger:     logger.With("system", "checks"),
	}
}

func (c *checks) Handler(maxUploadSize int64, info ServiceInfo) *Handler {
	return NewHandler(c, c.logger, maxUploadSize, info)
}

// Verify runs the quick claim check. Attachments are never consulted on
// this path; only fields and query parameters feed the analysis.
func (c *checks) Verify(ctx context.Context, input Input) (*VerifyResult, error) {
	req, err := payload.Normalize(input.Body, input.Query, nil)
	if err != nil {
		return nil, err
	}

	report, err := c.dispatcher.Dispatch(ctx, req)
	if err != nil {
		return nil, err
	}

	c.logger.Info("claim verified", "verdict", report.Verdict, "confidence", report.Confidence)

	return &VerifyResult{
		OK:     true,
		Input:  EchoedInput{Claim: optional(req.Claim), URL: optional(req.URL)},
		Result: report,
	}, nil
}

// UniversalCheck runs the deep path: media forensics when an attachment is
// present, text analysis otherwise. Accepted uploads are retained under a
// generated key and released again if the analysis fails.
func (c *checks) UniversalCheck(ctx context.Context, input Input) (*CheckResult, error) {
	req, err := payload.Normalize(input.Body, input.Query, input.Attachment)
	if err != nil {
		return nil, err
	}

	if req.Media == nil {
		report, err := c.dispatcher.Dispatch(ctx, req)
		if err != nil {
			return nil, err
		}

		return &CheckResult{
			Status:       "ok",
			AnalysisType: "text",
			Report:       report,
		}, nil
	}

	key, err := c.storeUpload(ctx, req.Media)
	if err != nil {
		return nil, err
	}

	report, err := c.dispatcher.Dispatch(ctx, req)
	if err != nil {
		if delErr := c.storage.Delete(ctx, key); delErr != nil {
			c.logger.Warn("compensating upload delete failed", "key", key, "error", delErr)
		}
		return nil, err
	}

	c.logger.Info("media analyzed", "kind", req.Media.Kind, "key", key, "verdict", report.Verdict)

	return &CheckResult{
		Status:       "ok",
		AnalysisType: "media",
		MediaKind:    req.Media.Kind,
		Source:       key,
		Report:       report,
	}, nil
}

func (c *checks) storeUpload(ctx context.Context, media *payload.MediaBlob) (string, error) {
	id := uuid.New()
	key := hex.EncodeToString(id[:]) + filepath.Ext(media.Filename)

	if err := c.storage.Store(ctx, key, bytes.NewReader(media.Data), media.ContentType); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}

	c.logger.Info("upload stored", "key", key, "content_type", media.ContentType, "size_bytes", len(media.Data))
	return key, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
