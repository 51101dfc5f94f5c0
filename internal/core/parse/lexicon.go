package parse

import (
	"regexp"

	"recipe-parser/internal/pkg/common"
)

// The heuristic vocabularies are plain data keyed by language so that adding
// a language is a table change, not a code change.

var unitWords = map[common.Language]map[string]bool{
	common.LanguageGerman: wordSet(
		"g", "gramm", "kg", "mg", "ml", "cl", "dl", "l", "liter",
		"el", "tl", "msp", "prise", "prisen", "stück", "stueck", "stk",
		"bund", "packung", "päckchen", "paeckchen", "dose", "dosen",
		"becher", "tasse", "tassen", "scheibe", "scheiben", "zehe", "zehen",
		"würfel", "wuerfel", "tropfen", "glas", "blatt", "blätter", "zweig", "zweige",
	),
	common.LanguageEnglish: wordSet(
		"g", "gram", "grams", "kg", "mg", "ml", "l", "liter", "liters",
		"cup", "cups", "tbsp", "tablespoon", "tablespoons", "tsp", "teaspoon", "teaspoons",
		"oz", "ounce", "ounces", "lb", "lbs", "pound", "pounds",
		"pinch", "pinches", "dash", "clove", "cloves", "slice", "slices",
		"can", "cans", "package", "packages", "stick", "sticks", "piece", "pieces",
		"bunch", "sprig", "sprigs", "handful",
	),
}

var ingredientNouns = map[common.Language]map[string]bool{
	common.LanguageGerman: wordSet(
		"mehl", "zucker", "salz", "butter", "milch", "ei", "eier", "wasser",
		"öl", "oel", "sahne", "hefe", "backpulver", "vanille", "vanillezucker",
		"zwiebel", "zwiebeln", "knoblauch", "tomate", "tomaten", "käse", "kaese",
		"paprika", "kartoffel", "kartoffeln", "reis", "nudeln", "pfeffer",
		"zitrone", "honig", "senf", "essig", "petersilie", "basilikum",
		"schinken", "speck", "hackfleisch", "hähnchen", "haehnchen", "quark", "joghurt",
	),
	common.LanguageEnglish: wordSet(
		"flour", "sugar", "salt", "butter", "milk", "egg", "eggs", "water",
		"oil", "cream", "yeast", "vanilla", "onion", "onions", "garlic",
		"tomato", "tomatoes", "cheese", "pepper", "potato", "potatoes",
		"rice", "pasta", "noodles", "lemon", "honey", "mustard", "vinegar",
		"parsley", "basil", "ham", "bacon", "beef", "chicken", "yogurt",
	),
}

var cookingVerbs = map[common.Language]map[string]bool{
	common.LanguageGerman: wordSet(
		"mischen", "vermischen", "rühren", "ruehren", "verrühren", "verruehren",
		"umrühren", "umruehren", "kneten", "backen", "braten", "anbraten",
		"kochen", "aufkochen", "schneiden", "hacken", "würfeln", "wuerfeln",
		"geben", "hinzufügen", "hinzufuegen", "zugeben", "erhitzen", "vorheizen",
		"schälen", "schaelen", "waschen", "abtropfen", "abgießen", "abgiessen",
		"servieren", "garnieren", "abschmecken", "würzen", "wuerzen",
		"dünsten", "duensten", "pürieren", "puerieren", "bestreuen", "füllen",
		"fuellen", "wenden", "gießen", "giessen", "unterheben", "schlagen",
	),
	common.LanguageEnglish: wordSet(
		"mix", "stir", "whisk", "beat", "knead", "bake", "fry", "cook",
		"boil", "simmer", "cut", "chop", "dice", "slice", "add", "heat",
		"preheat", "peel", "wash", "drain", "serve", "garnish", "season",
		"blend", "pour", "combine", "sprinkle", "fold", "place", "remove",
		"transfer", "cover", "reduce", "melt", "grease", "arrange",
	),
}

var stepContextWords = map[common.Language]map[string]bool{
	common.LanguageGerman: wordSet(
		"ofen", "backofen", "pfanne", "topf", "schüssel", "schuessel",
		"backblech", "herd", "mixer", "rührgerät", "ruehrgeraet", "deckel",
		"goldbraun", "goldgelb", "weich", "gar", "knusprig", "cremig",
		"minuten", "minute", "stunden", "stunde", "sekunden", "hitze",
		"temperatur", "grad", "stufe",
	),
	common.LanguageEnglish: wordSet(
		"oven", "pan", "pot", "skillet", "bowl", "sheet", "tray", "stove",
		"mixer", "lid", "golden", "tender", "crispy", "creamy", "done",
		"minutes", "minute", "hours", "hour", "seconds", "heat",
		"temperature", "degrees",
	),
}

// imperativePatterns capture sentence constructions typical for preparation
// steps: German article-first and verb-final imperatives, English verb-first
// imperatives, temporal connectors and time/temperature phrases.
var imperativePatterns = map[common.Language][]*regexp.Regexp{
	common.LanguageGerman: {
		regexp.MustCompile(`^(?i)(den|die|das|dem|der|einen|eine|ein|alle|alles)\s+\p{L}+`),
		regexp.MustCompile(`(?i)(mischen|verrühren|rühren|kneten|backen|braten|kochen|schneiden|hacken|geben|erhitzen|vorheizen|schälen|waschen|servieren|garnieren|abschmecken|würzen|unterheben|schlagen|lassen)\s*[.!]?$`),
		regexp.MustCompile(`(?i)\b(dann|danach|anschließend|zuerst|zunächst|währenddessen|zum schluss|nun|jetzt)\b`),
		regexp.MustCompile(`(?i)\b(bei|für|ca\.?|etwa)\s*\d+\s*(minuten|min\.?|stunden|std\.?|sekunden|grad|°c?)\b`),
	},
	common.LanguageEnglish: {
		regexp.MustCompile(`^(?i)(mix|stir|whisk|beat|knead|bake|fry|cook|boil|simmer|cut|chop|dice|add|heat|preheat|peel|wash|drain|serve|garnish|season|blend|pour|combine|sprinkle|fold|place|remove|transfer|cover|let|bring)\b`),
		regexp.MustCompile(`(?i)\b(then|next|afterwards|first|finally|meanwhile|now|until)\b`),
		regexp.MustCompile(`(?i)\b(at|for|about)\s+\d+\s*(minutes?|mins?\.?|hours?|seconds?|degrees?|°[cf]?)\b`),
	},
}

// dietaryTags maps lowercase tag tokens to the canonical cuisine entry.
var dietaryTags = map[string]string{
	"vegetarisch": "Vegetarisch",
	"vegetarian":  "Vegetarisch",
	"vegan":       "Vegan",
	"glutenfrei":  "Glutenfrei",
	"gluten-free": "Glutenfrei",
	"laktosefrei": "Laktosefrei",
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func lexiconFor(tables map[common.Language]map[string]bool, lang common.Language) map[string]bool {
	if set, ok := tables[lang]; ok {
		return set
	}
	return tables[common.DefaultLanguage]
}

func patternsFor(lang common.Language) []*regexp.Regexp {
	if ps, ok := imperativePatterns[lang]; ok {
		return ps
	}
	return imperativePatterns[common.DefaultLanguage]
}
