package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultMarianEndpoint is the Hugging Face Inference API.
	DefaultMarianEndpoint = "https://api-inference.huggingface.co"
	// DefaultMarianModel is the fine-tuned English→Kalenjin MarianMT model.
	DefaultMarianModel = "tketer/kalenjin-translator"
)

// MarianProvider translates by calling a hosted MarianMT model through the
// Hugging Face Inference API.
type MarianProvider struct {
	modelURL string
	token    string
	client   *http.Client
}

// NewMarianProvider builds a provider for the given endpoint/model. Empty
// arguments fall back to the Kalenjin defaults.
func NewMarianProvider(endpoint, model, token string) *MarianProvider {
	trimmedModel := strings.TrimSpace(model)
	if trimmedModel == "" {
		trimmedModel = DefaultMarianModel
	}
	return &MarianProvider{
		modelURL: modelInferenceURL(endpoint, trimmedModel),
		token:    strings.TrimSpace(token),
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (p *MarianProvider) Name() string {
	return "marian"
}

func (p *MarianProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	if p == nil {
		return nil, fmt.Errorf("marian provider is nil")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}

	started := time.Now()
	outputs, err := p.infer(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(outputs) != 1 {
		return nil, fmt.Errorf("translation response had %d outputs for one input", len(outputs))
	}

	return &TranslateResponse{
		Text:         outputs[0],
		SourceLang:   req.SourceLang,
		TargetLang:   req.TargetLang,
		ProviderName: p.Name(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

func (p *MarianProvider) TranslateBatch(ctx context.Context, req BatchTranslateRequest) (*BatchTranslateResponse, error) {
	if p == nil {
		return nil, fmt.Errorf("marian provider is nil")
	}
	if len(req.Texts) == 0 {
		return nil, fmt.Errorf("texts are required")
	}
	texts := make([]string, len(req.Texts))
	for idx, text := range req.Texts {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil, fmt.Errorf("texts[%d] is empty", idx)
		}
		texts[idx] = trimmed
	}

	started := time.Now()
	outputs, err := p.infer(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(outputs) != len(texts) {
		return nil, fmt.Errorf("translation response had %d outputs for %d inputs", len(outputs), len(texts))
	}

	return &BatchTranslateResponse{
		Texts:        outputs,
		SourceLang:   req.SourceLang,
		TargetLang:   req.TargetLang,
		ProviderName: p.Name(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

func (p *MarianProvider) infer(ctx context.Context, texts []string) ([]string, error) {
	body, err := json.Marshal(marianInferenceRequest{Inputs: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal translation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.modelURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build translation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send translation request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read translation response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errPayload marianErrorResponse
		if unmarshalErr := json.Unmarshal(respBody, &errPayload); unmarshalErr == nil {
			if msg := strings.TrimSpace(errPayload.Error); msg != "" {
				return nil, fmt.Errorf("translation endpoint status %d: %s", resp.StatusCode, msg)
			}
		}
		return nil, fmt.Errorf("translation endpoint status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed []marianInferenceOutput
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode translation response: %w", err)
	}

	outputs := make([]string, 0, len(parsed))
	for idx, item := range parsed {
		translated := strings.TrimSpace(item.TranslationText)
		if translated == "" {
			return nil, fmt.Errorf("translation response output %d was empty", idx)
		}
		outputs = append(outputs, translated)
	}
	return outputs, nil
}

type marianInferenceRequest struct {
	Inputs []string `json:"inputs"`
}

type marianInferenceOutput struct {
	TranslationText string `json:"translation_text"`
}

type marianErrorResponse struct {
	Error string `json:"error"`
}

func modelInferenceURL(endpoint, model string) string {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = DefaultMarianEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		parsed, _ = url.Parse(DefaultMarianEndpoint)
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/") + "/models/" + model
	return parsed.String()
}
