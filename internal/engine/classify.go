package engine

// Category is the terminal waste category an inference run reduces to.
// Conclusion tokens remain free-form strings for chaining; the closed
// enum exists only at this classification boundary.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryOrganik
	CategoryAnorganik
	CategoryB3
)

// classifyOrder is the fixed precedence: the first token present in the
// inferred set wins. Independent of rule priorities.
var classifyOrder = []struct {
	token    string
	category Category
}{
	{"b3", CategoryB3},
	{"anorganik", CategoryAnorganik},
	{"organik", CategoryOrganik},
}

// String returns the canonical token for the category, or "unknown".
func (c Category) String() string {
	switch c {
	case CategoryOrganik:
		return "organik"
	case CategoryAnorganik:
		return "anorganik"
	case CategoryB3:
		return "b3"
	default:
		return "unknown"
	}
}

// Classify reduces an inferred fact set to one category:
// b3 > anorganik > organik > unknown.
func Classify(inferred []string) Category {
	set := make(map[string]struct{}, len(inferred))
	for _, f := range inferred {
		set[f] = struct{}{}
	}
	for _, c := range classifyOrder {
		if _, ok := set[c.token]; ok {
			return c.category
		}
	}
	return CategoryUnknown
}
