package parse

import (
	"regexp"
	"strconv"
	"strings"

	"recipe-parser/internal/pkg/common"
)

// Section identifies the list a parsed line belongs to.
type Section string

const (
	SectionNone        Section = ""
	SectionIngredients Section = "ingredients"
	SectionSteps       Section = "steps"
)

// Section heading keywords, bilingual. Matched on equality or prefix after
// normalization.
var (
	ingredientHeadings = []string{"zutaten", "ingredients"}
	stepHeadings       = []string{"zubereitung", "anleitung", "schritte", "steps", "directions", "instructions", "preparation", "method"}
)

var (
	headingStrip    = strings.NewReplacer("#", "", "*", "", "-", "", ":", "")
	propertyLineRE  = regexp.MustCompile(`^([\p{L} ]+):\s*(.+)$`)
	listMarkerRE    = regexp.MustCompile(`^\s*([-*•]|\d+[.)])\s+`)
	numberRE        = regexp.MustCompile(`\d+`)
	servingsDE      = regexp.MustCompile(`(?i)für\s+(\d+)\s+person(?:en)?`)
	servingsEN      = regexp.MustCompile(`(?i)for\s+(\d+)\s+(?:people|persons|servings)`)
	markdownImageRE = regexp.MustCompile(`!\[[^\]]*\]\(([^)]+)\)`)
)

// DetectSection recognizes a section-heading line. It returns SectionNone
// when the line is not a heading.
func DetectSection(line string) Section {
	norm := strings.ToLower(strings.TrimSpace(headingStrip.Replace(line)))
	if norm == "" {
		return SectionNone
	}
	for _, kw := range ingredientHeadings {
		if norm == kw || strings.HasPrefix(norm, kw+" ") {
			return SectionIngredients
		}
	}
	for _, kw := range stepHeadings {
		if norm == kw || strings.HasPrefix(norm, kw+" ") {
			return SectionSteps
		}
	}
	return SectionNone
}

// IsPropertyLine reports whether the line has the form "Key: Value" with a
// letters-and-spaces key and a non-empty value.
func IsPropertyLine(line string) bool {
	return propertyLineRE.MatchString(strings.TrimSpace(line))
}

// SplitProperty returns the key and value of a property line.
func SplitProperty(line string) (key, value string, ok bool) {
	m := propertyLineRE.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

// IsListItem reports whether the line starts with a bullet or number marker.
func IsListItem(line string) bool {
	return listMarkerRE.MatchString(line)
}

// StripListMarker removes a leading bullet or number marker.
func StripListMarker(line string) string {
	return strings.TrimSpace(listMarkerRE.ReplaceAllString(line, ""))
}

// ApplyProperty routes a recognized Key:Value pair into the draft. Keys are
// matched by case-insensitive bilingual substring; unrecognized keys are
// ignored and reported as not applied.
func ApplyProperty(draft *common.RecipeDraft, key, value string) bool {
	k := strings.ToLower(strings.TrimSpace(key))
	v := strings.TrimSpace(value)
	if k == "" || v == "" {
		return false
	}

	switch {
	case containsAnySubstring(k, "portion", "serving", "person"):
		n, ok := ExtractNumber(v, 1, 0)
		if ok {
			draft.Servings = n
		}
		return ok
	case containsAnySubstring(k, "zeit", "time", "dauer", "zubereitung", "koch", "cooking"):
		n, ok := ExtractNumber(v, 0, 0)
		if ok {
			draft.CookingTimeMinutes = n
		}
		return ok
	case containsAnySubstring(k, "schwierigkeit", "difficulty", "level"):
		n, ok := ExtractNumber(v, 0, 0)
		if ok {
			draft.Difficulty = common.ClampDifficulty(n)
		}
		return ok
	case containsAnySubstring(k, "kulinarik", "cuisine", "küche", "kueche"):
		for _, c := range SplitCommaList(v) {
			if !draft.HasCuisine(c) {
				draft.Cuisines = append(draft.Cuisines, c)
			}
		}
		return true
	case containsAnySubstring(k, "kategorie", "category"):
		draft.Category = v
		return true
	case containsAnySubstring(k, "tags", "tag", "ernährung", "ernaehrung", "diet"):
		ApplyDietaryTags(draft, v)
		return true
	case containsAnySubstring(k, "bild", "image", "foto", "photo"):
		if url, ok := extractImageRef(v); ok {
			draft.ImageRef = url
		}
		return true
	case containsAnySubstring(k, "notiz", "note", "hinweis"):
		draft.Notes = v
		return true
	}
	return false
}

// ApplyServingsSentence checks the "für N Personen" / "for N people" sentence
// form, independent of the Key:Value shape, and applies it to the draft.
func ApplyServingsSentence(draft *common.RecipeDraft, line string) bool {
	for _, re := range []*regexp.Regexp{servingsDE, servingsEN} {
		if m := re.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				draft.Servings = n
				return true
			}
		}
	}
	return false
}

// ApplyDietaryTags scans a tag value for known dietary tokens and appends
// their canonical form to the cuisines, de-duplicated case-insensitively.
func ApplyDietaryTags(draft *common.RecipeDraft, value string) {
	for _, token := range letterWords(value) {
		canonical, ok := dietaryTags[token]
		if !ok {
			continue
		}
		if !draft.HasCuisine(canonical) {
			draft.Cuisines = append(draft.Cuisines, canonical)
		}
	}
}

// ExtractNumber pulls the first integer out of a string. min and max bound
// the result when positive; a max of 0 means unbounded.
func ExtractNumber(s string, min, max int) (int, bool) {
	m := numberRE.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	if n < min {
		n = min
	}
	if max > 0 && n > max {
		n = max
	}
	return n, true
}

// SplitCommaList splits a comma-separated value into trimmed non-empty
// entries.
func SplitCommaList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// extractImageRef accepts either a markdown image link or a bare URL.
func extractImageRef(v string) (string, bool) {
	if m := markdownImageRE.FindStringSubmatch(v); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return v, true
	}
	return "", false
}

func containsAnySubstring(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
