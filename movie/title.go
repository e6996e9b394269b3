package movie

const overviewFallback = "Trama non disponibile"

// ContentAvailability reports which fields look localized.
type ContentAvailability struct {
	Title    bool `json:"title"`
	Overview bool `json:"overview"`
	Any      bool `json:"any"`
}

// Availability is a heuristic: the API echoes the original title when it has
// no translation, so a differing title or any overview counts as localized.
func Availability(m Movie) ContentAvailability {
	a := ContentAvailability{
		Title:    m.Title != m.OriginalTitle,
		Overview: m.Overview != "",
	}
	a.Any = a.Title || a.Overview
	return a
}

// ResolveTitle picks the title to display for m.
func ResolveTitle(m Movie) string {
	if Availability(m).Any {
		return m.Title
	}
	return m.OriginalTitle
}

func ResolveOverview(m Movie) string {
	if m.Overview != "" {
		return m.Overview
	}
	return overviewFallback
}
