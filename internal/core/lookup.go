package core

// Placeholder values rendered for a category id that does not resolve.
const (
	UnknownCategoryName  = "Unknown Category"
	UnknownCategoryColor = "#9CA3AF"
	UnknownCategoryIcon  = "circle-help"
)

// CategoryByID scans the category set for id. The boolean is false when no
// category matches.
func (s Snapshot) CategoryByID(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryOrPlaceholder resolves id, substituting a neutral placeholder when
// the id is dangling. The placeholder keeps the requested id.
func (s Snapshot) CategoryOrPlaceholder(id string) Category {
	if c, ok := s.CategoryByID(id); ok {
		return c
	}
	return PlaceholderCategory(id)
}

// PlaceholderCategory is the display stand-in for an unresolved category id.
func PlaceholderCategory(id string) Category {
	return Category{
		ID:    id,
		Name:  UnknownCategoryName,
		Color: UnknownCategoryColor,
		Icon:  UnknownCategoryIcon,
	}
}
