package entity

// Category groups Items for browsing.
type Category struct {
	ID   uint
	Name string
}
