// Package tabular parses semi-structured recipe exports: delimited CSV
// bulk files and Notion Markdown/CSV documents.
package tabular

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"recipe-parser/internal/core/parse"
	"recipe-parser/internal/pkg/common"

	"go.uber.org/zap"
)

// CategoryImageFunc is an optional collaborator that looks up a fallback
// image for a recipe by its categories. Implementations may hit a datastore;
// the importer calls it synchronously and stores only the resolved value.
type CategoryImageFunc func(ctx context.Context, categories []string) (string, error)

// ImportResult is the outcome of a bulk CSV import. Failed rows are excluded
// from Recipes and surfaced as warnings; the batch as a whole only fails when
// every row fails.
type ImportResult struct {
	Recipes  []*common.RecipeDraft `json:"recipes"`
	Warnings []string              `json:"warnings"`
}

const (
	headingPrefix = "###"

	colName       = "Name"
	colCreatedAt  = "Erstellt am"
	colCreatedBy  = "Erstellt von"
	colCuisine    = "Kulinarik"
	colCategory   = "Speisenkategorie"
	colServings   = "Portionen"
	colTime       = "Zubereitung"
	colDifficulty = "Schwierigkeit"
	colIngredient = "Zutat"
	colStep       = "Zubereitungsschritt"
)

var (
	// Trailing serving unit, e.g. "4 Personen", "12 Stück".
	servingUnitRE = regexp.MustCompile(`^\s*(\d+)\s*(\p{L}*)\s*$`)

	// Leading step numbering in the forms "1. ", "2) ", "3 - ", "4: ".
	stepNumberingRE = regexp.MustCompile(`^\d+(?:\s*[.):]|\s+-)\s+`)
)

// ParseRecipeCSV parses a delimited export into recipe drafts. The author
// name is attached to rows without an "Erstellt von" value. getCategoryImage
// may be nil.
func ParseRecipeCSV(ctx context.Context, content string, author string, getCategoryImage CategoryImageFunc) (*ImportResult, error) {
	content = strings.TrimPrefix(content, "\ufeff")
	lines := contentLines(content)
	if len(lines) < 2 {
		return nil, common.NewValidationError("CSV muss mindestens eine Kopf- und eine Datenzeile enthalten / CSV needs a header and at least one data row")
	}

	delimiter := DetectDelimiter(lines[0])
	header := SplitDelimited(lines[0], delimiter)

	result := &ImportResult{
		Recipes:  []*common.RecipeDraft{},
		Warnings: []string{},
	}

	for rowNum, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := SplitDelimited(line, delimiter)

		draft, categories, err := buildRow(header, fields, author, rowNum+2)
		if err != nil {
			result.Warnings = append(result.Warnings, err.Error())
			continue
		}

		if draft.ImageRef == "" && len(categories) > 0 && getCategoryImage != nil {
			imageRef, imgErr := getCategoryImage(ctx, categories)
			if imgErr != nil {
				common.LogWarn("category image lookup failed",
					zap.Error(imgErr),
					zap.Strings("categories", categories),
				)
			} else if imageRef != "" {
				draft.ImageRef = imageRef
			}
		}

		result.Recipes = append(result.Recipes, draft)
	}

	if len(result.Recipes) == 0 {
		return nil, common.NewValidationError(
			fmt.Sprintf("kein Rezept konnte importiert werden / no row could be imported: %s",
				strings.Join(result.Warnings, "; ")))
	}

	for _, w := range result.Warnings {
		common.LogWarn("CSV row skipped", zap.String("reason", w))
	}

	return result, nil
}

// buildRow maps one CSV record onto a draft using the German canonical
// column headers. It returns the categories separately for the image lookup.
func buildRow(header, fields []string, author string, rowNum int) (*common.RecipeDraft, []string, error) {
	draft := common.NewRecipeDraft()
	draft.ID = common.GenerateUUID()
	draft.IsPrivate = true
	draft.Author = author

	var categories []string

	for i, col := range header {
		if i >= len(fields) {
			break
		}
		value := strings.TrimSpace(fields[i])
		if value == "" {
			continue
		}
		col = strings.TrimSpace(col)

		switch {
		case strings.HasPrefix(col, colStep):
			draft.Steps = append(draft.Steps, stepItem(value))
		case strings.HasPrefix(col, colIngredient):
			draft.Ingredients = append(draft.Ingredients, ingredientItem(value))
		case col == colName:
			draft.Title = value
		case col == colCreatedAt:
			draft.CreatedAtRaw = value
		case col == colCreatedBy:
			draft.Author = value
		case col == colCuisine:
			draft.Cuisines = append(draft.Cuisines, parse.SplitCommaList(value)...)
		case col == colCategory:
			categories = parse.SplitCommaList(value)
			if len(categories) > 0 {
				draft.Category = categories[0]
			}
		case col == colServings:
			count, unit := parseServings(value)
			draft.Servings = count
			draft.ServingUnit = unit
		case col == colTime:
			if n, ok := parse.ExtractNumber(value, 0, 0); ok {
				draft.CookingTimeMinutes = n
			}
		case col == colDifficulty:
			if n, ok := parse.ExtractNumber(value, 0, 0); ok {
				draft.Difficulty = common.ClampDifficulty(n)
			}
		}
	}

	if strings.TrimSpace(draft.Title) == "" {
		return nil, nil, fmt.Errorf("Zeile %d: Rezeptname fehlt", rowNum)
	}
	if countNonHeading(draft.Ingredients) == 0 {
		return nil, nil, fmt.Errorf("Zeile %d: Keine Zutaten gefunden", rowNum)
	}
	if countNonHeading(draft.Steps) == 0 {
		return nil, nil, fmt.Errorf("Zeile %d: Keine Zubereitungsschritte gefunden", rowNum)
	}

	return draft, categories, nil
}

// ingredientItem keeps the text verbatim; only the heading prefix is
// interpreted. A leading "1." may be a legitimate part of an ingredient.
func ingredientItem(value string) common.ListItem {
	if text, ok := headingText(value); ok {
		return common.ListItem{Kind: common.ItemHeading, Text: text}
	}
	return common.ListItem{Kind: common.ItemIngredient, Text: value}
}

// stepItem strips leading numbering in addition to the heading prefix.
func stepItem(value string) common.ListItem {
	if text, ok := headingText(value); ok {
		return common.ListItem{Kind: common.ItemHeading, Text: text}
	}
	return common.ListItem{
		Kind: common.ItemStep,
		Text: strings.TrimSpace(stepNumberingRE.ReplaceAllString(value, "")),
	}
}

func headingText(value string) (string, bool) {
	if strings.HasPrefix(value, headingPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(value, headingPrefix)), true
	}
	return "", false
}

// parseServings splits "4 Personen" style values into count and unit.
func parseServings(value string) (int, string) {
	m := servingUnitRE.FindStringSubmatch(value)
	if m == nil {
		if n, ok := parse.ExtractNumber(value, 1, 0); ok {
			return n, "portion"
		}
		return common.DefaultServings, "portion"
	}

	count, _ := parse.ExtractNumber(m[1], 1, 0)
	unit := strings.ToLower(m[2])
	switch {
	case strings.HasPrefix(unit, "person"):
		return count, "person"
	case strings.HasPrefix(unit, "stück") || strings.HasPrefix(unit, "stueck"):
		return count, "piece"
	default:
		return count, "portion"
	}
}

func countNonHeading(items []common.ListItem) int {
	n := 0
	for _, it := range items {
		if it.Kind != common.ItemHeading {
			n++
		}
	}
	return n
}

// DetectDelimiter counts unquoted commas and semicolons in the header line
// and picks the semicolon only when it is strictly more frequent.
func DetectDelimiter(headerLine string) rune {
	commas, semicolons := 0, 0
	inQuotes := false
	for _, r := range headerLine {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				commas++
			}
		case ';':
			if !inQuotes {
				semicolons++
			}
		}
	}
	if semicolons > commas {
		return ';'
	}
	return ','
}

// SplitDelimited splits a single record into fields with RFC4180-like
// quoting: quotes toggle literal mode, a doubled quote inside quotes is an
// escaped quote, and delimiters inside quotes are literal. One record per
// line is assumed; a quoted field cannot span a newline because records are
// split on newlines before this runs.
func SplitDelimited(line string, delimiter rune) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	runes := []rune(line)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case r == delimiter && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, current.String())
	return fields
}

// contentLines splits the file into logical lines, dropping a trailing
// carriage return per line.
func contentLines(content string) []string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}
