// file: internal/genres/tables.go
// version: 1.1.0
// guid: 4f8b2d6c-0a3e-4b9f-a751-8c2e6d0b4f93

package genres

import "github.com/mediatheque/explorer/internal/models"

// DefaultWeight is the rank given to any vocabulary label without an
// explicit entry in its category table.
const DefaultWeight = 6.0

// vocabularyStory is the shared genre vocabulary of the story-driven
// collections (mangas, animes, novels).
var vocabularyStory = []string{
	"abu", "abandoned", "academy", "acting", "action", "athlete", "adopted", "age gap", "alien", "androgine", "animals", "animal characteristics", "ancestor", "amnesia", "a.i.", "apocalypse", "art", "artist",
	"arts-martiaux", "aventure", "aveugle", "body swap", "badass", "beast world", "beast tamer", "business", "brother", "caretaker", "calme",
	"célèbre", "child", "child lead", "changement d'apparence", "change species", "cohabitation", "constellation", "comédie", "cooking", "crazy", "criminel", "crossdressing", "cultivation",
	"demon", "designer", "drame", "disciple", "divorce", "dungeon", "esclave", "ex-op", "fantasy", "father", "female lead", "farmer",
	"food", "game become reality", "gender transformation", "ghosts", "guerre", "handicap", "harcelé", "harem", "healer", "hell", "historical", "horreur", "hero", "isekai", "idol", "invincible", "intelligent", "inquiétude", "jeux vidéo", "kidnapping",
	"lazy", "library", "long life", "magie", "male lead", "malentendu", "maid", "manga", "mature", "mariage arrangé", "mariage", "mariage contractuel", "mécanique", "médicale", "mental hospital", "mental illness", "mendiant", "meurtre", "militaire",
	"moderne", "mort", "monstre", "mother", "monde parallèle", "murim", "multi world", "multi life", "musique", "mystère",
	"novel", "noble", "non humain", "omegaverse", "overpowered", "patisserie", "power", "police", "prof", "psychologique", "pregnancy", "rajeunissement", "reclus", "réincarnation", "relic", "remariage", "return", "retraite", "revival",
	"revenge", "rich", "romance", "saint", "school life", "science", "servant", "showbiz", "special ability", "slice of life", "seconde chance",
	"secret identity", "secte", "sick", "sport", "suicide", "supernatural", "survival",
	"système", "tattoo", "time", "time limit", "time travel", "tower", "tyrant", "transmigration", "transformation", "traître", "trahison", "ugly", "vampire", "villainess", "villain",
	"veuve", "writer", "yuri", "yaoi", "zombie",
}

// weightsStory ranks the story-driven vocabulary. Lower is more important;
// the 1.x band marks dominant genres.
var weightsStory = map[string]float64{
	"female lead": 0,
	"male lead":   0,
	"autre":       0,

	"manga":            1.1,
	"sick":             1.11,
	"child lead":       1.12,
	"yaoi":             1.13,
	"beast world":      1.2,
	"omegaverse":       1.21,
	"moderne":          1.22,
	"historical":       1.23,
	"monde parallèle":  1.3,
	"fantasy":          1.31,
	"arts-martiaux":    1.32,
	"slice of life":    1.33,
	"dungeon":          1.34,
	"médicale":         1.4,
	"multi world":      1.41,
	"multi life":       1.42,
	"système":          1.43,
	"rich":             1.44,
	"ex-op":            1.45,
	"badass":           1.46,
	"overpowered":      1.5,
	"beast tamer":      1.51,
	"tyrant":           1.6,

	"romance":              2.1,
	"crossdressing":        2.12,
	"academy":              2.13,
	"acting":               2.14,
	"mental hospital":      2.15,
	"body swap":            2.16,
	"secret identity":      2.17,
	"game become reality":  2.18,
	"animal characteristics": 2.2,
	"apocalypse":           2.21,
	"transmigration":       2.22,
	"isekai":               2.23,
	"return":               2.24,
	"healer":               2.3,
	"secte":                2.31,
	"murim":                2.32,
	"invincible":           2.33,
	"seconde chance":       2.34,
	"mystère":              2.4,
	"tower":                2.41,
	"designer":             2.42,
	"hell":                 2.43,
	"library":              2.5,
	"reclus":               2.51,
	"maid":                 2.52,
	"disciple":             2.53,
	"ancestor":             2.6,
	"time travel":          2.61,

	"mariage":              3.1,
	"remariage":            3.11,
	"mariage contractuel":  3.12,
	"mariage arrangé":      3.13,
	"adopted":              3.14,
	"father":               3.15,
	"mother":               3.16,
	"brother":              3.17,
	"malentendu":           3.18,
	"calme":                3.19,
	"kidnapping":           3.2,
	"cultivation":          3.21,
	"villain":              3.22,
	"harcelé":              3.23,
	"horreur":              3.24,
	"caretaker":            3.3,
	"retraite":             3.31,
	"farmer":               3.32,
	"a.i.":                 3.33,
	"aveugle":              3.34,
	"non humain":           3.35,
	"abandoned":            3.4,
	"réincarnation":        3.41,
	"time limit":           3.42,
	"long life":            3.43,
	"saint":                3.5,
	"veuve":                3.51,

	"gender transformation": 4.1,
	"handicap":              4.11,
	"special ability":       4.12,
	"mental illness":        4.13,
	"intelligent":           4.14,
	"crazy":                 4.15,
	"inquiétude":            5.16,
	"food":                  4.2,
	"animals":               4.21,
	"business":              4.22,
	"rajeunissement":        4.23,
	"cooking":               4.24,
	"prof":                  4.3,
	"abu":                   4.31,
	"revenge":               4.32,
	"athlete":               4.33,
	"supernatural":          4.34,
	"survival":              4.4,
	"pregnancy":             4.41,
	"amnesia":               4.42,
	"power":                 4.43,
	"militaire":             4.5,
	"guerre":                4.51,
	"esclave":               4.52,
	"child":                 4.6,

	"action":        5.1,
	"drame":         5.12,
	"school life":   5.13,
	"aventure":      5.14,
	"revival":       5.2,
	"comédie":       5.21,
	"psychologique": 5.22,
	"age gap":       5.23,
	"alien":         5.24,
	"mendiant":      5.3,
	"servant":       5.31,
	"science":       5.32,
	"patisserie":    5.33,
	"célèbre":       5.4,
	"jeux vidéo":    5.41,
	"musique":       5.42,
	"constellation": 5.43,
	"mécanique":     5.5,
	"magie":         5.51,
	"transformation": 5.52,
	"mature":        5.53,
	"idol":          5.6,
}

var vocabularyFilms = []string{
	"action", "aventure", "comédie", "drame", "fantasy", "sci-fi", "slice of life",
	"romance", "horreur", "thriller", "mystère", "musique", "historique", "sport",
	"female lead", "male lead",
}

var weightsFilms = map[string]float64{
	"female lead": 0,
	"male lead":   0,

	"fantasy":    1.1,
	"sci-fi":     1.2,
	"historique": 1.3,
	"thriller":   1.4,
	"horreur":    1.5,

	"romance": 2.1,
	"drame":   2.2,
	"mystère": 2.3,
	"aventure": 2.4,
	"action":  2.5,

	"slice of life": 3.1,
	"sport":         3.2,
	"comédie":       3.3,
	"musique":       3.4,
}

var vocabularySeries = []string{
	"action", "aventure", "comédie", "drame", "enquête", "fantasy", "sci-fi", "slice of life",
	"romance", "horreur", "thriller", "mystère", "police", "psychologique", "historique",
	"school life",
	"female lead", "male lead",
}

var weightsSeries = map[string]float64{
	"female lead": 0,
	"male lead":   0,

	"fantasy":    1.1,
	"sci-fi":     1.2,
	"historique": 1.3,
	"thriller":   1.4,

	"romance": 2.1,
	"drame":   2.2,
	"enquête": 2.21,
	"mystère": 2.3,
	"horreur": 2.4,

	"action":        3.1,
	"aventure":      3.2,
	"slice of life": 3.3,
	"school life":   3.4,

	"comédie":       4.1,
	"police":        4.2,
	"psychologique": 4.3,
}

// builtinTables constructs the default registry content.
func builtinTables() map[models.Category]*Table {
	return map[models.Category]*Table{
		models.CategoryMangas: NewTable(models.CategoryMangas, vocabularyStory, weightsStory, DefaultWeight),
		models.CategoryAnimes: NewTable(models.CategoryAnimes, vocabularyStory, weightsStory, DefaultWeight),
		models.CategoryNovels: NewTable(models.CategoryNovels, vocabularyStory, weightsStory, DefaultWeight),
		models.CategoryFilms:  NewTable(models.CategoryFilms, vocabularyFilms, weightsFilms, DefaultWeight),
		models.CategorySeries: NewTable(models.CategorySeries, vocabularySeries, weightsSeries, DefaultWeight),
	}
}
