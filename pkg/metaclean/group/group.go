// Package group reduces mid-level categories into ten coarse top-level
// groups for high-level reporting: nine thematic groups plus the "other"
// catch-all.
//
// Resolution is a two-rung ladder. An explicit table maps the known
// mid-level category keys to their group; anything else falls through to an
// ordered keyword scan where the first substring hit wins. The scan order is
// significant — several groups share short substrings ("service", "home") —
// so both tables are fixed-order literals, not maps.
package group

import (
	"strings"

	"github.com/glyphlab/metaclean/pkg/metaclean/internalerr"
	"github.com/glyphlab/metaclean/pkg/metaclean/normalize"
	"github.com/glyphlab/metaclean/pkg/metaclean/table"
)

// Other is the catch-all group for categories nothing else claims.
const Other = "other"

// DefaultTargetColumn is the column AddTopLevel writes when the caller does
// not name one.
const DefaultTargetColumn = "category_main"

// groupEntry pairs a top-level group with its member keys or keywords.
type groupEntry struct {
	group string
	keys  []string
}

// groupedCategories assigns the known mid-level category keys to their
// top-level group.
var groupedCategories = []groupEntry{
	{"real_estate_construction", []string{
		"real_estate_residential", "real_estate_commercial", "real_estate_development",
		"construction_general", "construction_home", "construction_specialty", "construction_materials",
	}},
	{"food_beverage", []string{
		"restaurant_dining", "cafe_coffee", "bar_nightlife", "brewery_alcohol", "catering_events",
		"food_production", "grocery_retail", "beverage_general",
	}},
	{"tech", []string{
		"software_development", "web_digital", "it_services", "telecommunications", "fintech_crypto",
		"data_analytics", "tech_hardware",
	}},
	{"health", []string{
		"healthcare_general", "dental_services", "medical_specialty", "wellness_fitness",
		"mental_health", "veterinary",
	}},
	{"education", []string{
		"education_k12", "higher_education", "training_development", "educational_services",
	}},
	{"retail_hospitality", []string{
		"retail_general", "ecommerce_online", "hotels_lodging", "hospitality_services",
		"fashion_apparel", "home_goods",
	}},
	{"professional_financial_legal", []string{
		"financial_services", "accounting_tax", "insurance_services", "legal_services",
		"consulting_business", "marketing_advertising",
	}},
	{"manufacturing_transport", []string{
		"manufacturing_general", "automotive_transport", "vehicle_sales", "transportation_services",
		"import_export", "chemical_materials", "energy_utilities",
	}},
	{"entertainment_sports_media", []string{
		"music_industry", "film_video", "arts_culture", "entertainment_venues", "sports_recreation",
		"gaming_entertainment", "media_publishing",
	}},
	{Other, []string{"unclassified"}},
}

// keywordBuckets is the substring fallback ladder, scanned in declaration
// order.
var keywordBuckets = []groupEntry{
	{"real_estate_construction", []string{"real", "estate", "property", "construction", "builder", "developer", "contractor", "housing", "residential", "commercial"}},
	{"food_beverage", []string{"restaurant", "cafe", "coffee", "bar", "beer", "brewery", "food", "grocery", "catering", "beverage", "deli", "bakery"}},
	{"tech", []string{"software", "web", "digital", "it", "tech", "data", "analytics", "cloud", "saas", "blockchain", "crypto", "ai", "machine", "telecom", "telecommunications"}},
	{"health", []string{"health", "medical", "clinic", "dental", "vet", "veterinary", "wellness", "fitness", "therapy", "hospital", "med"}},
	{"education", []string{"school", "education", "academy", "university", "college", "training", "tutoring", "learning"}},
	{"retail_hospitality", []string{"retail", "shop", "store", "boutique", "hotel", "lodging", "hospitality", "fashion", "ecommerce", "home"}},
	{"professional_financial_legal", []string{"finance", "financial", "bank", "accounting", "insurance", "legal", "law", "consult", "marketing", "hr", "human resources"}},
	{"manufacturing_transport", []string{"manufactur", "factory", "industrial", "vehicle", "automotive", "transport", "logistic", "shipping", "energy", "chemical"}},
	{"entertainment_sports_media", []string{"music", "film", "movie", "media", "entertain", "sport", "gaming", "theatre", "arts"}},
	{Other, []string{"community", "religion", "government", "nonprofit", "charity", "unclass", "other", "misc", "service"}},
}

// explicitGroups is the normalized exact-match index built once from
// groupedCategories.
var explicitGroups = buildExplicit()

func buildExplicit() map[string]string {
	m := make(map[string]string)
	for _, entry := range groupedCategories {
		for _, key := range entry.keys {
			m[normalize.Category(key)] = entry.group
		}
	}
	return m
}

// Groups returns the ten top-level group tags in table order.
func Groups() []string {
	out := make([]string, len(groupedCategories))
	for i, entry := range groupedCategories {
		out[i] = entry.group
	}
	return out
}

// TopLevel maps a category (raw or consolidated) to one of the ten top-level
// groups. Empty input maps to Other; so does anything neither table claims.
func TopLevel(category string) string {
	if strings.TrimSpace(category) == "" {
		return Other
	}

	cat := normalize.Category(category)

	if g, ok := explicitGroups[cat]; ok {
		return g
	}

	for _, entry := range keywordBuckets {
		for _, kw := range entry.keys {
			if strings.Contains(cat, kw) {
				return entry.group
			}
		}
	}

	return Other
}

// AddTopLevel derives the top-level group for every row of sourceCol and
// writes it into targetCol, creating the column when absent. A missing
// source column is a caller contract violation and fails immediately.
func AddTopLevel(t *table.Table, sourceCol, targetCol string) error {
	if sourceCol == "" {
		return internalerr.ErrInvalidConfig
	}
	if targetCol == "" {
		targetCol = DefaultTargetColumn
	}
	if _, err := t.RequireColumn(sourceCol); err != nil {
		return err
	}
	t.AddColumn(targetCol)
	for i := 0; i < t.Len(); i++ {
		t.Set(i, targetCol, TopLevel(t.Get(i, sourceCol)))
	}
	return nil
}
