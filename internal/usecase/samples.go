package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pawurb/mevlog-viewer/internal/domain/models"
)

// ListSamples returns the built-in sample searches
type ListSamples struct {
	catalog SampleCatalog
}

// NewListSamples creates a new ListSamples use case
func NewListSamples(catalog SampleCatalog) *ListSamples {
	return &ListSamples{catalog: catalog}
}

// Run executes the list samples use case
func (uc *ListSamples) Run(ctx context.Context) ([]models.Sample, error) {
	samples, err := uc.catalog.All()
	if err != nil {
		return nil, fmt.Errorf("failed to load samples: %w", err)
	}
	return samples, nil
}

// SelectSampleParams contains parameters for choosing a sample
type SelectSampleParams struct {
	// Name picks a sample directly; empty prompts when interactive
	Name           string
	NonInteractive bool
}

// SelectSample resolves a sample by name or interactively
type SelectSample struct {
	catalog  SampleCatalog
	selector InteractiveSelector
}

// NewSelectSample creates a new SelectSample use case
func NewSelectSample(catalog SampleCatalog, selector InteractiveSelector) *SelectSample {
	return &SelectSample{catalog: catalog, selector: selector}
}

// Run executes the select sample use case. The returned params replace the
// whole form, so fields the sample leaves empty are cleared.
func (uc *SelectSample) Run(ctx context.Context, params SelectSampleParams) (*models.Sample, error) {
	if name := strings.TrimSpace(params.Name); name != "" {
		sample, err := uc.catalog.Find(name)
		if err != nil {
			return nil, err
		}
		return &sample, nil
	}

	if params.NonInteractive {
		return nil, fmt.Errorf("sample name is required in non-interactive mode")
	}

	samples, err := uc.catalog.All()
	if err != nil {
		return nil, fmt.Errorf("failed to load samples: %w", err)
	}
	sample, err := uc.selector.SelectSample(ctx, samples, "Select a sample query")
	if err != nil {
		return nil, err
	}
	return &sample, nil
}
