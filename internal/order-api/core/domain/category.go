package domain

import "strings"

const (
	CategoryRegularFit   = "Regular Fit"
	CategoryOversizedTee = "Oversized Tee"
	CategoryCropTop      = "Crop Top"
	CategoryDropShoulder = "Drop Shoulder"
)

// Categories is the chart order of the product categories.
var Categories = []string{
	CategoryRegularFit,
	CategoryOversizedTee,
	CategoryCropTop,
	CategoryDropShoulder,
}

// first match wins
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"Oversized", CategoryOversizedTee},
	{"Crop", CategoryCropTop},
	{"Drop Shoulder", CategoryDropShoulder},
	{"Regular", CategoryRegularFit},
}

// InferCategory maps a product name onto a catalog category, defaulting to
// Regular Fit.
func InferCategory(name string) string {
	for _, k := range categoryKeywords {
		if strings.Contains(name, k.keyword) {
			return k.category
		}
	}
	return CategoryRegularFit
}

func IsCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// CategoryOf returns the stored category when it is a known one and falls
// back to name inference otherwise.
func (i LineItem) CategoryOf() string {
	if IsCategory(i.Category) {
		return i.Category
	}
	return InferCategory(i.Name)
}
