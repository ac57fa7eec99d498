// Package models lists the provider's generative models, ranked by a
// heuristic price tier inferred from the model name.
package models

import (
	"context"
	"sort"
	"strings"

	"github.com/deepscout-ai/deepscout/core/types"
	"github.com/deepscout-ai/deepscout/pkg/llm"
	"github.com/deepscout-ai/deepscout/pkg/xlog"
)

// Catalog wraps the provider's model listing. It holds no state between
// calls; every List hits the provider again.
type Catalog struct {
	client llm.ModelLister
	apiKey string
}

func NewCatalog(client llm.ModelLister, apiKey string) *Catalog {
	return &Catalog{
		client: client,
		apiKey: apiKey,
	}
}

// PriceTier ranks a model by cost from its name. 0 is cheapest.
func PriceTier(name string) int {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "exp"):
		return 0
	case strings.Contains(n, "flash"):
		return 1
	case strings.Contains(n, "pro"):
		return 2
	case strings.Contains(n, "ultra"):
		return 3
	default:
		return 1
	}
}

func priceIndicator(tier int) string {
	if tier >= 3 {
		return "💰💰💰+"
	}
	return strings.Repeat("💰", tier+1)
}

// displayName turns an identifier like "gemini-1.5-flash" into
// "Gemini 1.5 Flash". The compatibility endpoint carries no display names.
func displayName(name string) string {
	parts := strings.Split(name, "-")
	for i, p := range parts {
		if p != "" && p[0] >= 'a' && p[0] <= 'z' {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// List returns the provider's models sorted cheapest-first. Without a
// credential it returns an empty list; on a provider error it falls back to a
// fixed default list. Ties keep the provider's listing order.
func (c *Catalog) List(ctx context.Context) []types.ModelDescriptor {
	if c.apiKey == "" {
		return []types.ModelDescriptor{}
	}

	resp, err := c.client.ListModels(ctx)
	if err != nil {
		xlog.Error("Listing models failed, serving fallback catalog", "error", err)
		return fallbackModels()
	}

	out := make([]types.ModelDescriptor, 0, len(resp.Models))
	for _, m := range resp.Models {
		name := strings.TrimPrefix(m.ID, "models/")
		tier := PriceTier(name)
		out = append(out, types.ModelDescriptor{
			Name:           name,
			DisplayName:    displayName(name),
			PriceTier:      tier,
			PriceIndicator: priceIndicator(tier),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriceTier < out[j].PriceTier
	})
	return out
}

func fallbackModels() []types.ModelDescriptor {
	return []types.ModelDescriptor{
		{
			Name:           "gemini-1.5-flash",
			DisplayName:    "Gemini 1.5 Flash",
			Description:    "Fast and efficient model",
			PriceTier:      1,
			PriceIndicator: "💰💰",
		},
		{
			Name:           "gemini-1.5-pro",
			DisplayName:    "Gemini 1.5 Pro",
			Description:    "Advanced model for complex tasks",
			PriceTier:      2,
			PriceIndicator: "💰💰💰",
		},
	}
}
