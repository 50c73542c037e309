package repository

import "context"

// Joined pairs a child record with the link record that referenced it.
type Joined[C, L any] struct {
	Child C
	Link  L
}

// Join resolves link records to the children they reference.
//
// Links are fetched first, in their natural order. The distinct child keys are then fetched
// with one batched call and paired back in link order. Links whose child no longer exists are
// dropped. Any failure aborts the join.
func Join[L any, C interface{ Key() K }, K comparable](
	ctx context.Context,
	fetchLinks func(context.Context) ([]L, error),
	childKey func(L) K,
	fetchChildren func(context.Context, []K) ([]C, error),
) ([]Joined[C, L], error) {
	links, err := fetchLinks(ctx)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []Joined[C, L]{}, nil
	}

	seen := make(map[K]struct{}, len(links))
	keys := make([]K, 0, len(links))
	for _, l := range links {
		k := childKey(l)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	children, err := fetchChildren(ctx, keys)
	if err != nil {
		return nil, err
	}
	byKey := make(map[K]C, len(children))
	for _, c := range children {
		byKey[c.Key()] = c
	}

	out := make([]Joined[C, L], 0, len(links))
	for _, l := range links {
		if c, ok := byKey[childKey(l)]; ok {
			out = append(out, Joined[C, L]{Child: c, Link: l})
		}
	}
	return out, nil
}
