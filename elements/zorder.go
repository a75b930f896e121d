package elements

import "fmt"

// Direction selects a z-order move.
type Direction string

const (
	// DirectionUp brings the element in front of everything else in the scene.
	DirectionUp Direction = "up"
	// DirectionDown sends the element behind everything else, floored at 0.
	DirectionDown Direction = "down"
)

// ChangeZIndex renumbers only the targeted overlay relative to the combined
// z-index range of the scene: 'up' places it one above the current max,
// 'down' one below the current min but never negative. Other overlays keep
// their indices, so gaps accumulate; render order depends only on relative
// ordering.
func (s *Store) ChangeZIndex(scene int, kind Kind, id int64, dir Direction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bags[scene]
	if !ok {
		return 0, fmt.Errorf("scene %d: %w", scene, ErrNotFound)
	}

	target := s.zIndexOf(b, kind, id)
	if target == nil {
		return 0, fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}

	var next int
	switch dir {
	case DirectionUp:
		max, _ := b.maxZIndex()
		next = max + 1
	case DirectionDown:
		min, _ := b.minZIndex()
		next = min - 1
		if next < 0 {
			next = 0
		}
	default:
		return 0, fmt.Errorf("unknown z-order direction %q", dir)
	}

	*target = next
	return next, nil
}

// zIndexOf returns a mutable pointer to the overlay's z-index. Caller must
// hold the lock.
func (s *Store) zIndexOf(b *Bag, kind Kind, id int64) *int {
	switch kind {
	case KindLabel:
		for i := range b.Labels {
			if b.Labels[i].ID == id {
				return &b.Labels[i].ZIndex
			}
		}
	case KindSticker:
		for i := range b.Stickers {
			if b.Stickers[i].ID == id {
				return &b.Stickers[i].ZIndex
			}
		}
	case KindImageOverlay:
		for i := range b.ImageOverlays {
			if b.ImageOverlays[i].ID == id {
				return &b.ImageOverlays[i].ZIndex
			}
		}
	}
	return nil
}
