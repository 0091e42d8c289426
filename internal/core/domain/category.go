package domain

// Category is an entry in the fixed category catalog used for display grouping.
type Category struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Color      string `json:"color"`
}

// DefaultCategoryColor is the gray used when a category id is not in the catalog.
const DefaultCategoryColor = "#94A3B8"

// Categories is the closed catalog of known transaction categories.
var Categories = []Category{
	{CategoryID: "groceries", Name: "Groceries", Color: "#4ADE80"},
	{CategoryID: "dining", Name: "Dining Out", Color: "#FB7185"},
	{CategoryID: "entertainment", Name: "Entertainment", Color: "#60A5FA"},
	{CategoryID: "utilities", Name: "Utilities", Color: "#FBBF24"},
	{CategoryID: "transportation", Name: "Transportation", Color: "#A78BFA"},
	{CategoryID: "housing", Name: "Housing", Color: "#F472B6"},
	{CategoryID: "healthcare", Name: "Healthcare", Color: "#34D399"},
	{CategoryID: "shopping", Name: "Shopping", Color: "#F87171"},
	{CategoryID: "education", Name: "Education", Color: "#818CF8"},
	{CategoryID: "personal", Name: "Personal", Color: "#6EE7B7"},
	{CategoryID: "travel", Name: "Travel", Color: "#FCD34D"},
	{CategoryID: "income", Name: "Income", Color: "#2DD4BF"},
	{CategoryID: "other", Name: "Other", Color: "#94A3B8"},
}

// LookupCategory resolves a category id against the catalog.
// Unknown ids fall back to the raw id as display name with the default color.
func LookupCategory(categoryID string) Category {
	for _, c := range Categories {
		if c.CategoryID == categoryID {
			return c
		}
	}
	return Category{CategoryID: categoryID, Name: categoryID, Color: DefaultCategoryColor}
}
