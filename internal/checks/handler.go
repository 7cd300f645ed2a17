package checks

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"veritas/internal/payload"
	"veritas/pkg/formatting"
	"veritas/pkg/handlers"
	"veritas/pkg/routes"
)

// Handler provides HTTP endpoints for verification operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
	info          ServiceInfo
}

// ServiceInfo carries the non-secret runtime settings reported by the
// health and config endpoints.
type ServiceInfo struct {
	Service        string
	Version        string
	AllowedOrigins []string
	Provider       string
	Model          string
	SearchEnabled  bool
	MaxFrames      int
}

// NewHandler creates a Handler with the given system, logger, upload size
// limit, and service info.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64, info ServiceInfo) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "checks"),
		maxUploadSize: maxUploadSize,
		info:          info,
	}
}

// Routes returns the route group definition for verification endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/verify", Handler: h.Verify},
			{Method: "GET", Pattern: "/verify", Handler: h.VerifyInfo},
			{Method: "POST", Pattern: "/universal-check", Handler: h.UniversalCheck},
			{Method: "GET", Pattern: "/universal-check", Handler: h.UniversalCheckInfo},
			{Method: "GET", Pattern: "/health", Handler: h.Health},
			{Method: "GET", Pattern: "/config", Handler: h.Config},
		},
	}
}

// Verify handles the quick claim check. Bodies of any tolerated shape are
// accepted; file parts are ignored on this path.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	input, err := h.decodeInput(w, r, false)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.Verify(r.Context(), input)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// VerifyInfo describes the quick-check contract.
func (h *Handler) VerifyInfo(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"message":       "Use POST /verify with 'claim' and/or 'url' in the body.",
		"accepted_keys": append(payload.ClaimAliases(), payload.URLAliases()...),
		"example":       map[string]string{"claim": "The earth is flat"},
	})
}

// UniversalCheck handles the deep check: form fields plus an optional
// multipart "file" part carrying an image or video.
func (h *Handler) UniversalCheck(w http.ResponseWriter, r *http.Request) {
	input, err := h.decodeInput(w, r, true)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.UniversalCheck(r.Context(), input)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// UniversalCheckInfo describes the universal-check contract.
func (h *Handler) UniversalCheckInfo(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"message":         fmt.Sprintf("%s universal endpoint", h.info.Service),
		"usage":           "POST /universal-check with claim/url/file for deep analysis.",
		"max_upload_size": formatting.FormatBytes(h.maxUploadSize, 0),
	})
}

// Health reports service status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"service":         h.info.Service,
		"allowed_origins": h.info.AllowedOrigins,
	})
}

// Config reports redacted runtime settings.
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"service":         h.info.Service,
		"version":         h.info.Version,
		"allowed_origins": h.info.AllowedOrigins,
		"provider":        h.info.Provider,
		"model":           h.info.Model,
		"search_enabled":  h.info.SearchEnabled,
		"max_frames":      h.info.MaxFrames,
	})
}

// decodeInput reads the request into the wire pieces Normalize consumes.
// Multipart and urlencoded bodies surface their fields; every other body is
// handed over raw for tolerant interpretation. withFile controls whether a
// multipart "file" part is extracted as an attachment.
func (h *Handler) decodeInput(w http.ResponseWriter, r *http.Request, withFile bool) (Input, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	input := Input{Query: r.URL.Query()}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
			return input, ErrRequestTooLarge
		}
		input.Body = payload.Decode(nil, url.Values(r.MultipartForm.Value))

		if withFile {
			att, err := h.fileAttachment(r)
			if err != nil {
				return input, err
			}
			input.Attachment = att
		}
	default:
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return input, wrapReadError(err)
		}

		var form url.Values
		if mediaType == "application/x-www-form-urlencoded" {
			// Undecodable field syntax falls through to the raw-body path.
			if parsed, parseErr := url.ParseQuery(string(raw)); parseErr == nil {
				form = parsed
			}
		}

		input.Body = payload.Decode(raw, form)
	}

	return input, nil
}

// fileAttachment extracts the optional "file" multipart part. A missing
// part is not an error; the request proceeds as a text check.
func (h *Handler) fileAttachment(r *http.Request) (*payload.Attachment, error) {
	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableBody, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableBody, err)
	}

	return &payload.Attachment{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}, nil
}

func wrapReadError(err error) error {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return ErrRequestTooLarge
	}
	return fmt.Errorf("%w: %w", ErrUnreadableBody, err)
}
