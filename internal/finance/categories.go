package finance

import "strings"

// FallbackColor is used for a category name with no matching category,
// e.g. after a rename or delete.
const FallbackColor = "#3b82f6"

// CategoryPalette is the rotation new categories pick colors from.
var CategoryPalette = []string{"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6", "#ec4899", "#06b6d4"}

// DefaultCategories returns the built-in categories used when the user has
// none of their own.
func DefaultCategories() []Category {
	return []Category{
		{ID: "default-food", Name: "Food", Color: "#3b82f6"},
		{ID: "default-transport", Name: "Transport", Color: "#10b981"},
		{ID: "default-entertainment", Name: "Entertainment", Color: "#f59e0b"},
		{ID: "default-health", Name: "Health", Color: "#ef4444"},
		{ID: "default-paycheck", Name: "Paycheck", Color: "#8b5cf6"},
	}
}

// MergeCategories returns the user's categories followed by every default
// whose lowercased name the user has not already taken.
func MergeCategories(user []Category) []Category {
	taken := make(map[string]struct{}, len(user))
	out := make([]Category, 0, len(user)+5)
	for _, c := range user {
		key := strings.ToLower(c.Name)
		if _, dup := taken[key]; dup {
			continue
		}
		taken[key] = struct{}{}
		out = append(out, c)
	}
	for _, c := range DefaultCategories() {
		if _, ok := taken[strings.ToLower(c.Name)]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CategoryColor looks up the display color for a category name.
func CategoryColor(name string, categories []Category) string {
	for _, c := range categories {
		if c.Name == name && c.Color != "" {
			return c.Color
		}
	}
	return FallbackColor
}

// PaletteColor picks a palette color for the n-th category.
func PaletteColor(n int) string {
	if n < 0 {
		n = -n
	}
	return CategoryPalette[n%len(CategoryPalette)]
}
