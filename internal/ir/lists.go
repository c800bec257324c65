package ir

import "slices"

// Rule lists are ordinary slices: they compact on removal and every indexed
// operation is bounds-checked. These helpers never tombstone.

// ListAppend adds item at the end of the list.
func ListAppend[T any](list *[]T, item T) {
	*list = append(*list, item)
}

// ListSet overwrites the entry at idx.
func ListSet[T any](list []T, idx int, item T) error {
	if idx < 0 || idx >= len(list) {
		return NewIndexOutOfRange("", idx, len(list))
	}
	list[idx] = item
	return nil
}

// ListInsert inserts item before idx. idx == len(list) appends.
func ListInsert[T any](list *[]T, idx int, item T) error {
	if idx < 0 || idx > len(*list) {
		return NewIndexOutOfRange("", idx, len(*list))
	}
	*list = slices.Insert(*list, idx, item)
	return nil
}

// ListRemove deletes the entry at idx and shifts later entries down.
func ListRemove[T any](list *[]T, idx int) error {
	if idx < 0 || idx >= len(*list) {
		return NewIndexOutOfRange("", idx, len(*list))
	}
	*list = slices.Delete(*list, idx, idx+1)
	return nil
}
