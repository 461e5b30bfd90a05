package importer

// placeholder.go resolves games referenced by name before the catalog
// knows them.
//
// Player-stats exports name games without platform ids; the authoritative
// catalog may arrive later or never. Until it does, such a game is stored
// under a synthetic negative id, allocated strictly below every placeholder
// ever handed out so ids are never reused. Catalog imports match by
// platform id, so a placeholder and an authoritative row for the same
// conceptual game can coexist when their names differ; that is observed
// platform behavior and deliberately left alone.

import (
	"context"

	"github.com/askelund/bgastats/internal/store"
)

// placeholderAllocator hands out negative game ids within one import call.
// It seeds itself from the store minimum on first use, then counts down,
// so every id is below anything committed by earlier imports.
type placeholderAllocator struct {
	next   int64
	seeded bool
}

func (a *placeholderAllocator) nextID(ctx context.Context, st Store) (int64, error) {
	if !a.seeded {
		min, ok, err := st.MinPlaceholderGameID(ctx)
		if err != nil {
			return 0, err
		}
		if ok {
			a.next = min - 1
		} else {
			a.next = -1
		}
		a.seeded = true
	}

	id := a.next
	a.next--
	return id, nil
}

// resolveGameByName finds the game for a name-only reference, creating a
// placeholder when the name is new. An existing game is reused as-is
// whether its id is authoritative or synthetic.
func resolveGameByName(ctx context.Context, st Store, alloc *placeholderAllocator, name string) (*store.Game, bool, error) {
	g, err := st.GameByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if g != nil {
		return g, false, nil
	}

	id, err := alloc.nextID(ctx, st)
	if err != nil {
		return nil, false, err
	}

	g = &store.Game{
		BGAGameID:   id,
		Name:        name,
		DisplayName: name,
		Status:      store.StatusUnknown,
		Premium:     false,
	}
	if err := st.CreateGame(ctx, g); err != nil {
		return nil, false, err
	}
	return g, true, nil
}
