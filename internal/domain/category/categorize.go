package category

import (
	"strings"
	"unicode"

	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
)

// Categorize resolves the taxonomy entry for item. The exact app category is
// tried first, then a word-boundary keyword scan over the item's name,
// category and tags, then a substring match of the category against the app
// categories. Items that match nothing return ok=false and are ignored by
// the validation rules.
func Categorize(item wardrobe.Item) (Spec, bool) {
	cat := strings.ToLower(strings.TrimSpace(item.Category))
	if name, ok := appCategories[cat]; ok {
		return byName[name], true
	}

	text := " " + normalizeWords(item.Name+" "+item.Category+" "+strings.Join(item.Tags, " ")) + " "
	for _, s := range catalog {
		for _, v := range variants(s) {
			if strings.Contains(text, " "+v+" ") {
				return s, true
			}
		}
	}

	if cat != "" {
		for _, key := range appCategoryOrder {
			if strings.Contains(cat, key) {
				return byName[appCategories[key]], true
			}
		}
	}
	return Spec{}, false
}

// variants are the normalized spellings a catalog entry may appear under.
func variants(s Spec) []string {
	words := append([]string{s.Name}, s.aliases...)
	out := make([]string, 0, len(words)*3)
	for _, w := range words {
		out = append(out, normalizeWords(w), normalizeWords(w+"s"), normalizeWords(w+"es"))
	}
	return out
}

// normalizeWords lower-cases s and collapses every run of non-alphanumeric
// runes into a single space.
func normalizeWords(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ")
}
