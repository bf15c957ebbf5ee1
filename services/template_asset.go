package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultTemplatePath is where the fixed-layout quotation template is
// expected when the QUOTATION_TEMPLATE env var is unset.
const DefaultTemplatePath = "./static/quotation_template.pdf"

// templateFetchTimeout bounds each remote fetch attempt so an
// unresponsive asset host cannot hang document generation.
const templateFetchTimeout = 15 * time.Second

// TemplateSource loads the fixed-layout quotation template from a local
// path or an http(s) URL.
type TemplateSource struct {
	Location string
}

// NewTemplateSource resolves the template location from the environment.
func NewTemplateSource() TemplateSource {
	loc := os.Getenv("QUOTATION_TEMPLATE")
	if loc == "" {
		loc = DefaultTemplatePath
	}
	return TemplateSource{Location: loc}
}

// Load fetches the template bytes. Remote fetches get a per-attempt
// timeout and a single retry. A template that cannot be loaded is fatal
// for the whole document, so errors propagate to the caller.
func (t TemplateSource) Load(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(t.Location, "http://") || strings.HasPrefix(t.Location, "https://") {
		data, err := t.fetch(ctx)
		if err == nil {
			return data, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("quotation template %s: %w", t.Location, err)
		}
		// Retry once, then fail.
		data, err = t.fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("quotation template %s: %w", t.Location, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(t.Location)
	if err != nil {
		return nil, fmt.Errorf("quotation template %s: %w", t.Location, err)
	}
	return data, nil
}

func (t TemplateSource) fetch(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, templateFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.Location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
