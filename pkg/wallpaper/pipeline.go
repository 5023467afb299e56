package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dixieflatline76/wallsearch/pkg/provider"
	"github.com/dixieflatline76/wallsearch/util/log"
	"golang.org/x/sync/errgroup"
)

// ResolutionDetector reports the resolution used for "auto" preferences.
type ResolutionDetector interface {
	Detect(ctx context.Context) provider.Resolution
}

// ThumbnailFetcher returns a local path for a thumbnail URL.
type ThumbnailFetcher interface {
	Fetch(ctx context.Context, thumbURL string) (string, error)
}

// Pipeline turns a raw keyword string into a renderable result list.
type Pipeline struct {
	catalog  provider.Catalog
	detector ResolutionDetector
	thumbs   ThumbnailFetcher
	icon     string
	workers  int
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithIcon sets the icon used by placeholder items and degraded results.
func WithIcon(icon string) PipelineOption {
	return func(p *Pipeline) {
		p.icon = icon
	}
}

// WithWorkers sets how many thumbnails are fetched in parallel.
func WithWorkers(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// NewPipeline creates a Pipeline. detector may be nil, in which case "auto"
// resolves to provider.FallbackResolution.
func NewPipeline(catalog provider.Catalog, detector ResolutionDetector, thumbs ThumbnailFetcher, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		catalog:  catalog,
		detector: detector,
		thumbs:   thumbs,
		icon:     DefaultIcon,
		workers:  DefaultWorkerCount,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RunQuery runs one full query. It always returns at least one item: either
// the results in catalog order or a single placeholder describing why there
// are none.
func (p *Pipeline) RunQuery(ctx context.Context, rawText, minResPref string, limit int) []Item {
	if utf8.RuneCountInString(rawText) < MinQueryLength {
		return []Item{p.placeholder(KindPrompt,
			fmt.Sprintf("Type to search %s...", p.catalog.Name()),
			`Enter keywords or tags (e.g., "nature sunset")`, nil)}
	}

	minRes, err := p.resolveMinResolution(ctx, minResPref)
	if err != nil {
		return []Item{p.placeholder(KindError, fmt.Sprintf("Error searching %s", p.catalog.Name()), err.Error(), err)}
	}

	results, err := p.catalog.Search(ctx, provider.SearchQuery{
		Text:          rawText,
		MinResolution: minRes,
		Limit:         limit,
	})
	if err != nil {
		log.Printf("Search for %q failed: %v", rawText, err)
		var netErr *provider.NetworkError
		if errors.As(err, &netErr) {
			return []Item{p.placeholder(KindNetworkError, "Network error",
				fmt.Sprintf("Failed to connect to %s: %v", p.catalog.Name(), err), err)}
		}
		return []Item{p.placeholder(KindError, fmt.Sprintf("Error searching %s", p.catalog.Name()), err.Error(), err)}
	}

	if len(results) == 0 {
		return []Item{p.placeholder(KindNoResults, "No wallpapers found", fmt.Sprintf("No results for %q", rawText), nil)}
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return p.renderResults(ctx, results)
}

// resolveMinResolution maps a preference to the filter sent to the catalog.
// The zero Resolution means no filter.
func (p *Pipeline) resolveMinResolution(ctx context.Context, pref string) (provider.Resolution, error) {
	switch strings.TrimSpace(pref) {
	case "", provider.ResolutionNone:
		return provider.Resolution{}, nil
	case provider.ResolutionAuto:
		if p.detector == nil {
			return provider.FallbackResolution, nil
		}
		return p.detector.Detect(ctx), nil
	default:
		res, err := provider.ParseResolution(pref)
		if err != nil {
			return provider.Resolution{}, fmt.Errorf("invalid minimum resolution: %w", err)
		}
		return res, nil
	}
}

// renderResults builds one item per result. Thumbnails are fetched in
// parallel; each result owns its slot, so the output keeps catalog order.
// A failed thumbnail only costs that item its preview.
func (p *Pipeline) renderResults(ctx context.Context, results []provider.Wallpaper) []Item {
	items := make([]Item, len(results))

	var g errgroup.Group
	g.SetLimit(p.workers)

	for i, wp := range results {
		items[i] = Item{
			Kind:        KindWallpaper,
			Name:        fmt.Sprintf("%s - %s", wp.Resolution, wp.ID),
			Description: "Colors: " + formatColors(wp.Colors),
			Icon:        p.icon,
			Action:      &ApplyRequest{ID: wp.ID, URL: wp.Path},
		}

		if p.thumbs == nil {
			continue
		}
		g.Go(func() error {
			path, err := p.thumbs.Fetch(ctx, wp.ThumbURL)
			if err != nil {
				log.Printf("Thumbnail for %s unavailable: %v", wp.ID, err)
				items[i].Err = err
				return nil
			}
			items[i].Icon = path
			return nil
		})
	}
	_ = g.Wait()

	return items
}

// formatColors renders up to MaxListedColors colors as "#aaaaaa, #bbbbbb".
func formatColors(colors []string) string {
	if len(colors) > MaxListedColors {
		colors = colors[:MaxListedColors]
	}
	tagged := make([]string, len(colors))
	for i, c := range colors {
		tagged[i] = "#" + strings.TrimPrefix(c, "#")
	}
	return strings.Join(tagged, ", ")
}

func (p *Pipeline) placeholder(kind ItemKind, name, description string, err error) Item {
	return Item{
		Kind:        kind,
		Name:        name,
		Description: description,
		Icon:        p.icon,
		Err:         err,
	}
}
