package ir

import (
	"encoding/json"
	"iter"

	"gopkg.in/yaml.v3"
)

// Slots is an index-stable arena of optional items.
//
// Removal tombstones a slot instead of compacting, so indices handed out by
// Append stay valid for the lifetime of the collection. The zero value is an
// empty arena ready for use.
//
// Slots serializes as a plain array in which tombstones appear as null.
type Slots[T any] struct {
	items []*T
}

// SlotsOf builds an arena from the given items, all live.
func SlotsOf[T any](items ...T) Slots[T] {
	s := Slots[T]{items: make([]*T, len(items))}
	for i := range items {
		item := items[i]
		s.items[i] = &item
	}
	return s
}

// Len returns the number of slots, tombstones included.
func (s *Slots[T]) Len() int { return len(s.items) }

// Live returns the number of live slots.
func (s *Slots[T]) Live() int {
	n := 0
	for _, item := range s.items {
		if item != nil {
			n++
		}
	}
	return n
}

// At returns the live item at idx.
// Returns INDEX_OUT_OF_RANGE or INVALID_ELEMENT on failure.
func (s *Slots[T]) At(idx int) (*T, error) {
	if idx < 0 || idx >= len(s.items) {
		return nil, NewIndexOutOfRange("", idx, len(s.items))
	}
	if s.items[idx] == nil {
		return nil, NewInvalidElement("", idx)
	}
	return s.items[idx], nil
}

// Slot returns the item at idx, or nil for a tombstone or out-of-range index.
func (s *Slots[T]) Slot(idx int) *T {
	if idx < 0 || idx >= len(s.items) {
		return nil
	}
	return s.items[idx]
}

// Append stores item in a new slot and returns its index.
func (s *Slots[T]) Append(item T) int {
	s.items = append(s.items, &item)
	return len(s.items) - 1
}

// Set overwrites the slot at idx. A tombstoned slot is revived.
func (s *Slots[T]) Set(idx int, item T) error {
	if idx < 0 || idx >= len(s.items) {
		return NewIndexOutOfRange("", idx, len(s.items))
	}
	s.items[idx] = &item
	return nil
}

// Remove tombstones the slot at idx without shifting later slots.
func (s *Slots[T]) Remove(idx int) error {
	if idx < 0 || idx >= len(s.items) {
		return NewIndexOutOfRange("", idx, len(s.items))
	}
	s.items[idx] = nil
	return nil
}

// All iterates live slots in index order, reporting original indices.
func (s *Slots[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i, item := range s.items {
			if item == nil {
				continue
			}
			if !yield(i, item) {
				return
			}
		}
	}
}

// Clone returns a copy whose slots point at copies of the items.
// Items are copied by value; slices inside an item are shared.
func (s *Slots[T]) Clone() Slots[T] {
	out := Slots[T]{items: make([]*T, len(s.items))}
	for i, item := range s.items {
		if item != nil {
			cp := *item
			out.items[i] = &cp
		}
	}
	return out
}

// MarshalJSON encodes the arena as an array with null tombstones.
func (s Slots[T]) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// UnmarshalJSON decodes an array with null tombstones.
func (s *Slots[T]) UnmarshalJSON(data []byte) error {
	var items []*T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	s.items = items
	return nil
}

// MarshalYAML encodes the arena as a sequence with null tombstones.
func (s Slots[T]) MarshalYAML() (interface{}, error) {
	if s.items == nil {
		return []*T{}, nil
	}
	return s.items, nil
}

// UnmarshalYAML decodes a sequence with null tombstones.
func (s *Slots[T]) UnmarshalYAML(value *yaml.Node) error {
	var items []*T
	if err := value.Decode(&items); err != nil {
		return err
	}
	s.items = items
	return nil
}
