package domain

// Category is a catalog category. Level is the depth in the category
// tree; deeper means more specific.
type Category struct {
	ID    int64
	Name  string
	Level int
}

// Product carries the catalog attributes the export needs. Weight is in
// the store's configured weight unit.
type Product struct {
	ID          int64
	Weight      float64
	CategoryIDs []int64
}
