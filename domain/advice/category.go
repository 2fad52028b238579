package advice

import "strings"

// Category is one value of the closed tag vocabulary. The vocabulary is
// fixed: it is used both for input validation and for storage, and no
// other value is ever accepted.
type Category string

const (
	CategoryCareer         Category = "career"
	CategoryRelationships  Category = "relationships"
	CategoryHealth         Category = "health"
	CategoryFinance        Category = "finance"
	CategoryPersonalGrowth Category = "personal-growth"
	CategoryProductivity   Category = "productivity"
	CategoryEducation      Category = "education"
)

// Categories lists the full vocabulary in declaration order
func Categories() []Category {
	return []Category{
		CategoryCareer,
		CategoryRelationships,
		CategoryHealth,
		CategoryFinance,
		CategoryPersonalGrowth,
		CategoryProductivity,
		CategoryEducation,
	}
}

// CategoryList returns the vocabulary as a comma-separated string for
// error messages
func CategoryList() string {
	cats := Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// IsValidCategory reports whether s belongs to the vocabulary
func IsValidCategory(s string) bool {
	for _, c := range Categories() {
		if string(c) == s {
			return true
		}
	}
	return false
}

// ParseCategories validates and deduplicates raw category values. The
// result preserves first-seen order.
func ParseCategories(raw []string) ([]Category, []string) {
	var violations []string
	seen := make(map[Category]bool, len(raw))
	out := make([]Category, 0, len(raw))

	for _, s := range raw {
		if !IsValidCategory(s) {
			violations = append(violations, "Invalid categories: "+s+". Valid categories are: "+CategoryList())
			continue
		}
		c := Category(s)
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}

	return out, violations
}
