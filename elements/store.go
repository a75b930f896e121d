package elements

import (
	"fmt"
	"sort"
	"sync"

	"sceneforge/geometry"
	"sceneforge/types"
)

// ErrNotFound is returned when a scene bag or overlay id does not exist.
var ErrNotFound = fmt.Errorf("element not found")

// Store holds one Bag per scene. All mutation goes through the store so id
// assignment, z-ordering and timing clamps stay consistent.
type Store struct {
	mu   sync.Mutex
	bags map[int]*Bag
	ids  IDGenerator
}

// NewStore creates an empty store using the given id generator.
func NewStore(ids IDGenerator) *Store {
	if ids == nil {
		ids = NewCounterIDGenerator(0)
	}
	return &Store{bags: make(map[int]*Bag), ids: ids}
}

// Reinitialize wipes every bag and rebuilds one empty bag per scene number.
// Called whenever the project's scene list is replaced.
func (s *Store) Reinitialize(sceneNumbers []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bags = make(map[int]*Bag, len(sceneNumbers))
	for _, n := range sceneNumbers {
		s.bags[n] = newBag()
	}
}

// Bag returns the element bag for a scene.
func (s *Store) Bag(scene int) (*Bag, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bags[scene]
	return b, ok
}

// SceneNumbers returns the scenes known to the store, ascending.
func (s *Store) SceneNumbers() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	nums := make([]int, 0, len(s.bags))
	for n := range s.bags {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// Len reports how many scene bags exist.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bags)
}

// AddLabel assigns identity, z-order and clamped timing to the label and
// appends it to the scene's bag.
func (s *Store) AddLabel(scene int, l Label, sceneDuration float64) (Label, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bags[scene]
	if !ok {
		return Label{}, fmt.Errorf("scene %d: %w", scene, ErrNotFound)
	}
	l.ID = s.ids.Next()
	l.ZIndex = b.nextZIndex()
	l.Timing = clampTiming(l.Timing, sceneDuration)
	l.Position.Unit = types.UnitPercentage
	b.Labels = append(b.Labels, l)
	return l, nil
}

// AddSticker assigns identity, z-order and clamped timing to the sticker.
func (s *Store) AddSticker(scene int, st Sticker, sceneDuration float64) (Sticker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bags[scene]
	if !ok {
		return Sticker{}, fmt.Errorf("scene %d: %w", scene, ErrNotFound)
	}
	st.ID = s.ids.Next()
	st.ZIndex = b.nextZIndex()
	st.Timing = clampTiming(st.Timing, sceneDuration)
	st.Position.Unit = types.UnitPercentage
	if st.Scale == 0 {
		st.Scale = 1.0
	}
	b.Stickers = append(b.Stickers, st)
	return st, nil
}

// AddImageOverlay assigns identity, z-order and clamped timing to the image
// overlay.
func (s *Store) AddImageOverlay(scene int, o ImageOverlay, sceneDuration float64) (ImageOverlay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bags[scene]
	if !ok {
		return ImageOverlay{}, fmt.Errorf("scene %d: %w", scene, ErrNotFound)
	}
	o.ID = s.ids.Next()
	o.ZIndex = b.nextZIndex()
	o.Timing = clampTiming(o.Timing, sceneDuration)
	o.Position.Unit = types.UnitPercentage
	if o.Scale == 0 {
		o.Scale = 1.0
	}
	if o.Opacity == 0 {
		o.Opacity = 1.0
	}
	b.ImageOverlays = append(b.ImageOverlays, o)
	return o, nil
}

// UpdateLabel replaces the label with the matching id, re-clamping timing.
func (s *Store) UpdateLabel(scene int, l Label, sceneDuration float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bags[scene]
	if !ok {
		return fmt.Errorf("scene %d: %w", scene, ErrNotFound)
	}
	for i := range b.Labels {
		if b.Labels[i].ID == l.ID {
			l.Timing = clampTiming(l.Timing, sceneDuration)
			l.Position.Unit = types.UnitPercentage
			b.Labels[i] = l
			return nil
		}
	}
	return fmt.Errorf("label %d: %w", l.ID, ErrNotFound)
}

// UpdateSticker replaces the sticker with the matching id, re-clamping timing.
func (s *Store) UpdateSticker(scene int, st Sticker, sceneDuration float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bags[scene]
	if !ok {
		return fmt.Errorf("scene %d: %w", scene, ErrNotFound)
	}
	for i := range b.Stickers {
		if b.Stickers[i].ID == st.ID {
			st.Timing = clampTiming(st.Timing, sceneDuration)
			st.Position.Unit = types.UnitPercentage
			b.Stickers[i] = st
			return nil
		}
	}
	return fmt.Errorf("sticker %d: %w", st.ID, ErrNotFound)
}

// UpdateImageOverlay replaces the image overlay with the matching id,
// re-clamping timing.
func (s *Store) UpdateImageOverlay(scene int, o ImageOverlay, sceneDuration float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bags[scene]
	if !ok {
		return fmt.Errorf("scene %d: %w", scene, ErrNotFound)
	}
	for i := range b.ImageOverlays {
		if b.ImageOverlays[i].ID == o.ID {
			o.Timing = clampTiming(o.Timing, sceneDuration)
			o.Position.Unit = types.UnitPercentage
			b.ImageOverlays[i] = o
			return nil
		}
	}
	return fmt.Errorf("image overlay %d: %w", o.ID, ErrNotFound)
}

// Remove deletes an overlay by id from its kind's collection. Remaining
// z-indices are left untouched.
func (s *Store) Remove(scene int, kind Kind, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bags[scene]
	if !ok {
		return fmt.Errorf("scene %d: %w", scene, ErrNotFound)
	}
	switch kind {
	case KindLabel:
		for i := range b.Labels {
			if b.Labels[i].ID == id {
				b.Labels = append(b.Labels[:i], b.Labels[i+1:]...)
				return nil
			}
		}
	case KindSticker:
		for i := range b.Stickers {
			if b.Stickers[i].ID == id {
				b.Stickers = append(b.Stickers[:i], b.Stickers[i+1:]...)
				return nil
			}
		}
	case KindImageOverlay:
		for i := range b.ImageOverlays {
			if b.ImageOverlays[i].ID == id {
				b.ImageOverlays = append(b.ImageOverlays[:i], b.ImageOverlays[i+1:]...)
				return nil
			}
		}
	default:
		return fmt.Errorf("unknown overlay kind %q", kind)
	}
	return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
}

// Drag moves an overlay by a pointer delta given in preview pixels. The
// delta is converted to a percentage of the measured preview surface (or the
// fallback resolution when no measurement exists yet) and each axis is
// clamped to [0, 100].
func (s *Store) Drag(scene int, kind Kind, id int64, dx, dy float64, fallback types.Dimensions) (types.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bags[scene]
	if !ok {
		return types.Position{}, fmt.Errorf("scene %d: %w", scene, ErrNotFound)
	}

	surface := fallback
	if b.PreviewSize != nil && b.PreviewSize.Width > 0 && b.PreviewSize.Height > 0 {
		surface = *b.PreviewSize
	}
	px, py := geometry.DeltaToPercent(dx, dy, surface)

	pos := s.positionOf(b, kind, id)
	if pos == nil {
		return types.Position{}, fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	pos.X = geometry.ClampPercent(pos.X + px)
	pos.Y = geometry.ClampPercent(pos.Y + py)
	return *pos, nil
}

// positionOf returns a mutable pointer to the overlay's position. Caller
// must hold the lock.
func (s *Store) positionOf(b *Bag, kind Kind, id int64) *types.Position {
	switch kind {
	case KindLabel:
		for i := range b.Labels {
			if b.Labels[i].ID == id {
				return &b.Labels[i].Position
			}
		}
	case KindSticker:
		for i := range b.Stickers {
			if b.Stickers[i].ID == id {
				return &b.Stickers[i].Position
			}
		}
	case KindImageOverlay:
		for i := range b.ImageOverlays {
			if b.ImageOverlays[i].ID == id {
				return &b.ImageOverlays[i].Position
			}
		}
	}
	return nil
}

// CapturePreviewSize records the preview surface measurement for a scene.
// Write-once: later captures are ignored so mid-drag re-measurement cannot
// shift coordinates.
func (s *Store) CapturePreviewSize(scene int, d types.Dimensions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bags[scene]
	if !ok {
		return fmt.Errorf("scene %d: %w", scene, ErrNotFound)
	}
	if b.PreviewSize != nil {
		return nil
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("invalid preview size %gx%g", d.Width, d.Height)
	}
	b.PreviewSize = &d
	return nil
}

// SetAdjustments replaces a scene's image adjustment state.
func (s *Store) SetAdjustments(scene int, adj ImageAdjustments) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bags[scene]
	if !ok {
		return fmt.Errorf("scene %d: %w", scene, ErrNotFound)
	}
	b.Image = adj
	return nil
}

// SetActiveTab records which editor sub-panel is focused. Display-only.
func (s *Store) SetActiveTab(scene int, tab string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bags[scene]
	if !ok {
		return fmt.Errorf("scene %d: %w", scene, ErrNotFound)
	}
	b.ActiveTab = tab
	return nil
}

// SetDurationOverride sets or clears (nil) a scene's manual duration.
func (s *Store) SetDurationOverride(scene int, seconds *float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bags[scene]
	if !ok {
		return fmt.Errorf("scene %d: %w", scene, ErrNotFound)
	}
	b.Duration = seconds
	return nil
}

// Snapshot returns a deep copy of the bag map for persistence. Later store
// mutations never reach a snapshot already taken.
func (s *Store) Snapshot() map[int]*Bag {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]*Bag, len(s.bags))
	for n, b := range s.bags {
		out[n] = b.clone()
	}
	return out
}

// Restore replaces the store contents from a persisted snapshot. The id
// generator is re-seeded past the highest restored id so later adds cannot
// collide.
func (s *Store) Restore(bags map[int]*Bag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bags = make(map[int]*Bag, len(bags))
	var maxID int64
	for n, b := range bags {
		if b == nil {
			b = newBag()
		}
		s.bags[n] = b.clone()
		for _, l := range b.Labels {
			if l.ID > maxID {
				maxID = l.ID
			}
		}
		for _, st := range b.Stickers {
			if st.ID > maxID {
				maxID = st.ID
			}
		}
		for _, o := range b.ImageOverlays {
			if o.ID > maxID {
				maxID = o.ID
			}
		}
	}
	s.ids = NewCounterIDGenerator(maxID)
}
