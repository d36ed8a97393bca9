package models

// StatCategory identifies one statistical category from the season dataset.
// The dataset carries three columns per category: the raw value under the
// category key itself, a percentile rank under "<key>_rank" and a normalized
// [0,1] value under "<key>_norm".
type StatCategory string

const (
	CategoryGls      StatCategory = "Gls"
	CategoryAst      StatCategory = "Ast"
	CategoryXG       StatCategory = "xG"
	CategoryNpxG     StatCategory = "npxG"
	CategoryXAG      StatCategory = "xAG"
	CategoryGPerSh   StatCategory = "G/Sh"
	CategoryKP       StatCategory = "KP"
	CategoryPPA      StatCategory = "PPA"
	CategorySCA      StatCategory = "SCA"
	CategorySCA90    StatCategory = "SCA90"
	CategorySh       StatCategory = "Sh"
	CategoryShPer90  StatCategory = "Sh/90"
	CategorySoT      StatCategory = "SoT"
	CategorySoTPer90 StatCategory = "SoT/90"
	CategoryPrgC     StatCategory = "PrgC"
	CategoryCarries  StatCategory = "Carries"
	CategoryPrgDist  StatCategory = "PrgDist_stats_possession"
	CategoryPrgP     StatCategory = "PrgP"
	CategoryTkl      StatCategory = "Tkl"
	CategoryTklPct   StatCategory = "Tkl%"
	CategoryInt      StatCategory = "Int"
	CategoryRecov    StatCategory = "Recov"
)

// AllCategories lists every selectable category in display order.
var AllCategories = []StatCategory{
	CategoryGls, CategoryAst, CategoryXG, CategoryNpxG, CategoryXAG,
	CategoryGPerSh, CategoryKP, CategoryPPA, CategorySCA, CategorySCA90,
	CategorySh, CategoryShPer90, CategorySoT, CategorySoTPer90, CategoryPrgC,
	CategoryCarries, CategoryPrgDist, CategoryPrgP,
	CategoryTkl, CategoryTklPct, CategoryInt, CategoryRecov,
}

// ImpactCategories is the fixed stat set used for substitution impact deltas
// and the per-player radar summary.
var ImpactCategories = []StatCategory{
	CategoryGls, CategoryXG, CategoryXAG, CategorySoT, CategoryInt, CategoryRecov,
}

// MaxSelectedCategories caps how many categories may be active at once.
const MaxSelectedCategories = 5

var categoryLabels = map[StatCategory]string{
	CategoryGls:      "Goals",
	CategoryAst:      "Number of assists",
	CategoryXG:       "Expected goals(xG)",
	CategoryNpxG:     "Non-penalty xG",
	CategoryXAG:      "Expected assists(xAG)",
	CategoryGPerSh:   "Goals per shot(G/Sh)",
	CategoryKP:       "Key passes(KP)",
	CategoryPPA:      "Passes into penalty area",
	CategorySCA:      "Shot-creating actions",
	CategorySCA90:    "SCA per 90 minutes",
	CategorySh:       "Total shots",
	CategoryShPer90:  "Shots per 90 minutes",
	CategorySoT:      "Shots on target(SoT)",
	CategorySoTPer90: "SoT per 90 minutes",
	CategoryPrgC:     "Progressive carries",
	CategoryCarries:  "Carries",
	CategoryPrgDist:  "Progressive distance",
	CategoryPrgP:     "Progressive passes",
	CategoryTkl:      "Tackles(Tkl)",
	CategoryTklPct:   "Tackle success rate",
	CategoryInt:      "Interceptions(Int)",
	CategoryRecov:    "Ball recoveries",
}

// Label returns the human readable name for the category.
func (c StatCategory) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether c is one of the known dataset categories.
func (c StatCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// RankColumn returns the dataset column holding the percentile rank.
func (c StatCategory) RankColumn() string {
	return string(c) + "_rank"
}

// NormColumn returns the dataset column holding the normalized value.
func (c StatCategory) NormColumn() string {
	return string(c) + "_norm"
}
