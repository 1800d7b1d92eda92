package translation

import "context"

// Provider translates English source text into one target language. The
// underlying model is opaque and may be slow or unavailable; callers bound
// every call with a context deadline.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error)
	TranslateBatch(ctx context.Context, req BatchTranslateRequest) (*BatchTranslateResponse, error)
	Name() string
}

// TranslateRequest describes one translation request.
type TranslateRequest struct {
	Text       string
	SourceLang string // ISO 639-1 or a display name; providers normalize
	TargetLang string
}

// TranslateResponse contains translated text and provider metadata.
type TranslateResponse struct {
	Text         string
	SourceLang   string
	TargetLang   string
	ProviderName string
	LatencyMs    int64
}

// BatchTranslateRequest carries an ordered list of texts; the response
// preserves order and length.
type BatchTranslateRequest struct {
	Texts      []string
	SourceLang string
	TargetLang string
}

// BatchTranslateResponse contains one translation per input text, in input
// order.
type BatchTranslateResponse struct {
	Texts        []string
	SourceLang   string
	TargetLang   string
	ProviderName string
	LatencyMs    int64
}
