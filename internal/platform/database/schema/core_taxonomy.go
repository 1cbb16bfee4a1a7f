package schema

// TaxonomyTable represents a flat name/slug lookup table ('core.category', 'core.genre')
type TaxonomyTable struct {
	Table   string
	ID      string
	Name    string
	Slug    string
	SlugKey string
}

// CoreCategory is the schema definition for core.category
var CoreCategory = TaxonomyTable{
	Table:   "core.category",
	ID:      "id",
	Name:    "name",
	Slug:    "slug",
	SlugKey: "category_slug_key",
}

// CoreGenre is the schema definition for core.genre
var CoreGenre = TaxonomyTable{
	Table:   "core.genre",
	ID:      "id",
	Name:    "name",
	Slug:    "slug",
	SlugKey: "genre_slug_key",
}
