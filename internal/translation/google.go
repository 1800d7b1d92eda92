package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleProvider translates through the Google Cloud Translation API. The
// Kalenjin model is not available there; this provider covers the language
// pairs Google supports.
type GoogleProvider struct {
	credentialsFile string
}

// NewGoogleProvider builds a provider. An empty credentials path falls back
// to ambient application-default credentials.
func NewGoogleProvider(credentialsFile string) *GoogleProvider {
	return &GoogleProvider{
		credentialsFile: strings.TrimSpace(credentialsFile),
	}
}

func (p *GoogleProvider) Name() string {
	return "google"
}

func (p *GoogleProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	started := time.Now()
	outputs, err := p.translateTexts(ctx, []string{req.Text}, req.SourceLang, req.TargetLang)
	if err != nil {
		return nil, err
	}
	return &TranslateResponse{
		Text:         outputs[0],
		SourceLang:   req.SourceLang,
		TargetLang:   req.TargetLang,
		ProviderName: p.Name(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

func (p *GoogleProvider) TranslateBatch(ctx context.Context, req BatchTranslateRequest) (*BatchTranslateResponse, error) {
	if len(req.Texts) == 0 {
		return nil, fmt.Errorf("texts are required")
	}

	started := time.Now()
	outputs, err := p.translateTexts(ctx, req.Texts, req.SourceLang, req.TargetLang)
	if err != nil {
		return nil, err
	}
	return &BatchTranslateResponse{
		Texts:        outputs,
		SourceLang:   req.SourceLang,
		TargetLang:   req.TargetLang,
		ProviderName: p.Name(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

func (p *GoogleProvider) translateTexts(ctx context.Context, texts []string, sourceLang, targetLang string) ([]string, error) {
	targetTag, err := language.Parse(strings.TrimSpace(targetLang))
	if err != nil {
		return nil, fmt.Errorf("invalid target language %q: %w", targetLang, err)
	}

	var opts []option.ClientOption
	if p != nil && p.credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(p.credentialsFile))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create translation client: %w", err)
	}
	defer client.Close()

	var translateOpts *translate.Options
	if trimmed := strings.TrimSpace(sourceLang); trimmed != "" && !strings.EqualFold(trimmed, "auto") {
		sourceTag, parseErr := language.Parse(trimmed)
		if parseErr == nil {
			translateOpts = &translate.Options{Source: sourceTag}
		}
	}

	translations, err := client.Translate(ctx, texts, targetTag, translateOpts)
	if err != nil {
		return nil, fmt.Errorf("google translate: %w", err)
	}
	if len(translations) != len(texts) {
		return nil, fmt.Errorf("google translate returned %d results for %d inputs", len(translations), len(texts))
	}

	outputs := make([]string, 0, len(translations))
	for _, item := range translations {
		outputs = append(outputs, item.Text)
	}
	return outputs, nil
}
