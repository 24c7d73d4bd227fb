package models

// Paging is an offset based page of items. Next and Previous are empty at the ends of the collection.
type Paging[T any] struct {
	Href     string
	Items    []T
	Limit    int
	Offset   int
	Total    int
	Next     string
	Previous string
}

// HasNext reports whether another page follows this one.
func (p Paging[T]) HasNext() bool { return p.Next != "" }

// NextOffset is the offset of the following page.
func (p Paging[T]) NextOffset() int { return p.Offset + len(p.Items) }

// Cursors mark the position of a [CursorPaging] page.
type Cursors struct {
	After  string
	Before string
}

// CursorPaging is a cursor based page of items, used where offsets are unstable (followed artists).
type CursorPaging[T any] struct {
	Href    string
	Items   []T
	Limit   int
	Total   int
	Next    string
	Cursors Cursors
}

// HasNext reports whether another page follows this one.
func (p CursorPaging[T]) HasNext() bool { return p.Next != "" }
