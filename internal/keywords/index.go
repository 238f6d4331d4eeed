// internal/keywords/index.go
package keywords

import (
	"sort"
	"strings"
)

// Index — двунаправленный словарь сокращений. Строится один раз, дальше только читается.
type Index struct {
	entries map[string][]string
}

// BuildBidirectionalIndex: каждый алиас указывает на свой канонический термин и соседние алиасы
// того же термина, канонический термин — на все свои алиасы. Алиасы других терминов не подтягиваются,
// даже если алиас общий.
// Ключи нормализуются к нижнему регистру, значения сохраняют исходное написание.
func BuildBidirectionalIndex(canonicalToAliases map[string][]string) Index {
	entries := make(map[string][]string)
	add := func(key, value string) {
		k := normalize(key)
		if k == "" || strings.TrimSpace(value) == "" {
			return
		}
		for _, existing := range entries[k] {
			if strings.EqualFold(existing, value) {
				return
			}
		}
		entries[k] = append(entries[k], value)
	}

	// детерминированный порядок значений
	canonicals := make([]string, 0, len(canonicalToAliases))
	for c := range canonicalToAliases {
		canonicals = append(canonicals, c)
	}
	sort.Strings(canonicals)

	for _, canonical := range canonicals {
		aliases := make([]string, 0, len(canonicalToAliases[canonical]))
		for _, alias := range canonicalToAliases[canonical] {
			if normalize(alias) != normalize(canonical) {
				aliases = append(aliases, alias)
			}
		}
		for _, alias := range aliases {
			add(alias, canonical)
			add(canonical, alias)
		}
		for _, alias := range aliases {
			for _, sibling := range aliases {
				if normalize(sibling) != normalize(alias) {
					add(alias, sibling)
				}
			}
		}
	}
	return Index{entries: entries}
}

// Get возвращает копию значений для термина.
func (idx Index) Get(term string) []string {
	values := idx.entries[normalize(term)]
	if len(values) == 0 {
		return nil
	}
	return append([]string(nil), values...)
}

// Expand — сам термин и все его соответствия, для поиска.
func (idx Index) Expand(term string) []string {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	return append([]string{term}, idx.Get(term)...)
}

// Matches проверяет, подходит ли текст под термин (подстрока) или любое его раскрытие (целые слова).
// Без учёта регистра.
func (idx Index) Matches(term string, texts ...string) bool {
	expansions := idx.Expand(term)
	if len(expansions) == 0 {
		return false
	}

	needle := normalize(expansions[0])
	for _, text := range texts {
		if strings.Contains(normalize(text), needle) {
			return true
		}
	}
	for _, expansion := range expansions[1:] {
		word := " " + normalize(expansion) + " "
		for _, text := range texts {
			if strings.Contains(" "+normalize(text)+" ", word) {
				return true
			}
		}
	}
	return false
}

func (idx Index) Len() int {
	return len(idx.entries)
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
