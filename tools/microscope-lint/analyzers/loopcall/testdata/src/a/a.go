package a

import "context"

type Game struct{ palette []string }

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type Sessions interface {
	Apply(ctx context.Context, op string, m func(*Game) error) error
}

type Archive interface {
	LogAction(ctx context.Context, action, elementID string) error
}

func perItem(ctx context.Context, items []string, e Embedder, s Sessions, a Archive) {
	for _, item := range items {
		e.Embed(ctx, item) // want "Embed called inside loop: use EmbedBatch"
		s.Apply(ctx, "add_to_palette", func(g *Game) error { // want "Apply called inside loop: use one Apply whose mutation loops"
			g.palette = append(g.palette, item)
			return nil
		})
	}
	for i := 0; i < len(items); i++ {
		a.LogAction(ctx, "add_to_palette", items[i]) // want "LogAction called inside loop: use one LogAction with the items in details"
	}
}

func batched(ctx context.Context, items []string, e Embedder, s Sessions) {
	e.EmbedBatch(ctx, items)
	s.Apply(ctx, "add_to_palette", func(g *Game) error {
		for _, item := range items {
			g.palette = append(g.palette, item)
		}
		return nil
	})
}

func deferred(ctx context.Context, items []string, e Embedder) []func() {
	var fns []func()
	for _, item := range items {
		fns = append(fns, func() { e.Embed(ctx, item) })
	}
	return fns
}
