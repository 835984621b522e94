package ingestion

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/textutil"
)

var (
	// ErrHTTPRequestFailed is returned when the page cannot be retrieved
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when the page HTML cannot be parsed
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// URLOptions configures IngestFromURL
type URLOptions struct {
	// UseBrowser re-renders pages whose HTTP content is too short in headless Chrome
	UseBrowser bool
	Fetch      *fetch.Options
	Logger     *zap.Logger
}

// IngestFromURL fetches a job posting page and returns its cleaned main text.
// Platform-specific selectors pick the posting body and strip application
// forms and EEO boilerplate. The page title and site name are recorded in the
// metadata.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (*Document, error) {
	log := logger.WithFields(opts.Logger, zap.String(logger.FieldSource, urlStr))

	platform := fetch.DetectPlatform(urlStr)
	log.Debug("detected platform", zap.String("platform", string(platform)))

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	log.Debug("fetched page", zap.Int("bytes", len(result.HTML)))

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	html := result.HTML
	text, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		log.Debug("content too short, rendering in browser",
			zap.Int("chars", len(text)), zap.Int("min_chars", fetch.MinContentLength))

		rendered, browserErr := fetch.WithBrowser(ctx, urlStr, fetch.DefaultBrowserTimeout, log)
		if browserErr != nil {
			log.Warn("browser rendering failed, using HTTP content", zap.Error(browserErr))
		} else if browserText, extractErr := fetch.ExtractMainText(rendered, contentSelectors, noiseSelectors...); extractErr != nil {
			log.Warn("browser content extraction failed", zap.Error(extractErr))
		} else {
			html, text = rendered, browserText
		}
	}

	cleaned := textutil.CleanText(text)
	meta := NewMetadata(cleaned, urlStr)
	meta.FileType = "url"
	meta.Platform = string(platform)
	if pageMeta, metaErr := fetch.ExtractPageMeta(html); metaErr == nil {
		meta.Title = pageMeta.Title
		meta.Company = pageMeta.SiteName
	}

	log.Debug("ingested posting", zap.Int("chars", len(cleaned)))
	return &Document{Text: cleaned, Metadata: meta}, nil
}
