package tabular

import (
	"regexp"
	"strings"

	"recipe-parser/internal/core/parse"
	"recipe-parser/internal/pkg/common"
)

var (
	mdTitleRE      = regexp.MustCompile(`^#\s+(.+)$`)
	mdHeadingRE    = regexp.MustCompile(`^#{2,}\s+(.+)$`)
	mdBulletRE     = regexp.MustCompile(`^[-*]\s+(.+)$`)
	mdNumberedRE   = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
	mdStepNumberRE = regexp.MustCompile(`^\d+\.\s*`)
	mdEmphasisRE   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

// ParseNotionDocument parses a single Notion export, auto-detecting whether
// it is a Markdown page or a CSV database row.
func ParseNotionDocument(content string) (*common.RecipeDraft, error) {
	if strings.TrimSpace(content) == "" {
		return nil, common.NewValidationError("kein Inhalt zum Importieren vorhanden / no content to import")
	}
	if looksLikeMarkdown(content) {
		return ParseNotionMarkdown(content)
	}
	return ParseNotionCSV(content)
}

func looksLikeMarkdown(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") || strings.HasPrefix(trimmed, "## ") {
			return true
		}
	}
	return false
}

// ParseNotionMarkdown parses a Notion Markdown page into a single draft.
func ParseNotionMarkdown(content string) (*common.RecipeDraft, error) {
	if strings.TrimSpace(content) == "" {
		return nil, common.NewValidationError("kein Inhalt zum Importieren vorhanden / no content to import")
	}

	draft := common.NewRecipeDraft()
	section := parse.SectionNone

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		// Pipe tables are handled as a block.
		if strings.HasPrefix(line, "|") {
			block := []string{line}
			for i+1 < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i+1]), "|") {
				i++
				block = append(block, strings.TrimSpace(lines[i]))
			}
			applyTable(draft, block)
			continue
		}

		// Title: the first level-1 heading only.
		if m := mdTitleRE.FindStringSubmatch(line); m != nil && !mdHeadingRE.MatchString(line) {
			if draft.Title == "" {
				draft.Title = strings.TrimSpace(m[1])
			}
			continue
		}

		// Section switch on deeper headings, reusing the bilingual keyword
		// detection.
		if m := mdHeadingRE.FindStringSubmatch(line); m != nil {
			if s := parse.DetectSection(m[1]); s != parse.SectionNone {
				section = s
			}
			continue
		}

		// "**Key:** Value" with emphasis markers stripped, then "Key: Value".
		plain := mdEmphasisRE.ReplaceAllString(line, "$1")
		if key, value, ok := parse.SplitProperty(plain); ok {
			if parse.ApplyProperty(draft, key, value) {
				continue
			}
		}

		if m := mdBulletRE.FindStringSubmatch(line); m != nil {
			text := strings.TrimSpace(m[1])
			switch section {
			case parse.SectionIngredients:
				draft.Ingredients = append(draft.Ingredients, common.ListItem{
					Kind: common.ItemIngredient,
					Text: text,
				})
			case parse.SectionSteps:
				draft.Steps = append(draft.Steps, common.ListItem{
					Kind: common.ItemStep,
					Text: strings.TrimSpace(mdStepNumberRE.ReplaceAllString(text, "")),
				})
			}
			continue
		}

		// Bare numbered lines outside bullet syntax commit as steps.
		if m := mdNumberedRE.FindStringSubmatch(line); m != nil {
			draft.Steps = append(draft.Steps, common.ListItem{
				Kind: common.ItemStep,
				Text: strings.TrimSpace(m[2]),
			})
			continue
		}
	}

	if strings.TrimSpace(draft.Title) == "" {
		draft.Title = parse.TitlePlaceholder(common.DefaultLanguage)
	}
	return draft, nil
}

// applyTable maps a pipe-delimited table onto the draft. A two-column table
// is treated as key/value rows; any other table maps the header row to field
// names positionally against the first data row.
func applyTable(draft *common.RecipeDraft, block []string) {
	var rows [][]string
	for _, line := range block {
		if isTableSeparator(line) {
			continue
		}
		rows = append(rows, splitTableRow(line))
	}
	if len(rows) == 0 {
		return
	}

	if len(rows[0]) == 2 {
		for _, row := range rows {
			parse.ApplyProperty(draft, row[0], row[1])
		}
		return
	}

	if len(rows) < 2 {
		return
	}
	header := rows[0]
	values := rows[1]
	for i, key := range header {
		if i >= len(values) {
			break
		}
		parse.ApplyProperty(draft, key, values[i])
	}
}

func isTableSeparator(line string) bool {
	stripped := strings.Trim(line, "| ")
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r != '-' && r != ':' && r != ' ' && r != '|' {
			return false
		}
	}
	return true
}

func splitTableRow(line string) []string {
	cells := strings.Split(strings.Trim(line, "|"), "|")
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, strings.TrimSpace(c))
	}
	return out
}

// ParseNotionCSV parses the first data row of a Notion CSV database export.
// Column matching is by substring on the header, simpler than the bulk path.
func ParseNotionCSV(content string) (*common.RecipeDraft, error) {
	content = strings.TrimPrefix(content, "\ufeff")
	lines := contentLines(content)
	if len(lines) < 2 {
		return nil, common.NewValidationError("CSV muss mindestens eine Kopf- und eine Datenzeile enthalten / CSV needs a header and at least one data row")
	}

	delimiter := DetectDelimiter(lines[0])
	header := SplitDelimited(lines[0], delimiter)
	fields := SplitDelimited(lines[1], delimiter)

	draft := common.NewRecipeDraft()
	for i, col := range header {
		if i >= len(fields) {
			break
		}
		value := strings.TrimSpace(fields[i])
		if value == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(col))

		switch {
		case strings.Contains(key, "schritt"):
			draft.Steps = append(draft.Steps, stepItem(value))
		case strings.Contains(key, "zutat") || strings.Contains(key, "ingredient"):
			draft.Ingredients = append(draft.Ingredients, ingredientItem(value))
		case strings.Contains(key, "name") || strings.Contains(key, "title"):
			draft.Title = value
		default:
			parse.ApplyProperty(draft, col, value)
		}
	}

	if strings.TrimSpace(draft.Title) == "" {
		draft.Title = parse.TitlePlaceholder(common.DefaultLanguage)
	}
	return draft, nil
}
