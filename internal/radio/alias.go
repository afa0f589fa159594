package radio

import "strings"

// CountryAliases maps a country's display name to the set of spellings
// the directory and the curated table are known to use for it. The
// canonical name comes first. Unknown countries map to themselves, so
// the function is total and never fails.
func CountryAliases(name string) []string {
	lower := strings.ToLower(name)

	switch {
	case strings.Contains(lower, "united states"), lower == "usa", lower == "us":
		return []string{"USA", "United States", "United States of America"}
	case lower == "canada":
		return []string{"Canada"}
	case lower == "mexico", lower == "méxico":
		return []string{"Mexico", "México"}
	case strings.Contains(lower, "dominican"):
		return []string{"Dominican Republic", "Dominican Rep."}
	case lower == "uruguay":
		return []string{"Uruguay"}
	case lower == "chile":
		return []string{"Chile"}
	case lower == "ecuador":
		return []string{"Ecuador"}
	case lower == "guam":
		return []string{"Guam"}
	case lower == "colombia":
		return []string{"Colombia"}
	case lower == "spain", lower == "españa":
		return []string{"Spain", "España"}
	case strings.Contains(lower, "antarctica"):
		return []string{"Antarctica", "Antártida"}
	}

	return []string{name}
}
