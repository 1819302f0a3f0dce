package catalog

import (
	"context"
	"errors"

	"travel-admin/internal/logger"
	"travel-admin/internal/upstream"

	"go.uber.org/zap"
)

var ErrUnknownCategory = errors.New("unknown reference category")

var subDestinationIndexQuery = upstream.MustParse(`
query SubDestinationIndex($first: Int = 500) {
  subDestinations(first: $first) {
    edges { node { id title destination { id } } }
  }
}`)

type Provider struct {
	client upstream.Doer
}

func NewProvider(client upstream.Doer) *Provider {
	return &Provider{client: client}
}

// Options fetches a category and maps it to options. No data yields an empty list.
func (p *Provider) Options(ctx context.Context, cat Category) ([]Option, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Options"),
		zap.String("category", string(cat)),
	)

	def, ok := Lookup(cat)
	if !ok {
		log.Warn("unknown category")
		return nil, ErrUnknownCategory
	}

	var data map[string]Connection
	if err := p.client.Do(ctx, def.query, nil, &data); err != nil {
		log.Error("failed to fetch options", zap.Error(err))
		return nil, err
	}

	opts := ToOptions(data[def.Connection].Nodes(), def.DisplayField)
	log.Debug("success fetch options", zap.Int("count", len(opts)))
	return opts, nil
}

// SubDestinationIndex maps each destination id to the ids of its sub-destinations.
func (p *Provider) SubDestinationIndex(ctx context.Context) (map[string][]string, error) {
	var data map[string]Connection
	if err := p.client.Do(ctx, subDestinationIndexQuery, nil, &data); err != nil {
		logger.FromCtx(ctx).Error("failed to fetch sub-destination index", zap.Error(err))
		return nil, err
	}

	index := make(map[string][]string)
	for _, n := range data["subDestinations"].Nodes() {
		dest, _ := n["destination"].(map[string]any)
		destID := Stringify(dest["id"])
		if destID == "" {
			continue
		}
		index[destID] = append(index[destID], Stringify(n["id"]))
	}
	return index, nil
}
