package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down     key.Binding
	Open         key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	Genre        key.Binding
	Year         key.Binding
	Rating       key.Binding
	Language     key.Binding
	Sort         key.Binding
	ClearFilters key.Binding
	Trending     key.Binding
	Back         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "su")),
		Down:         key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "giù")),
		Open:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "dettagli")),
		NextPage:     key.NewBinding(key.WithKeys("pgdown", "ctrl+n"), key.WithHelp("pgdn", "pagina succ.")),
		PrevPage:     key.NewBinding(key.WithKeys("pgup", "ctrl+p"), key.WithHelp("pgup", "pagina prec.")),
		Genre:        key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("^g", "genere")),
		Year:         key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("^y", "anno")),
		Rating:       key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^r", "voto")),
		Language:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("^l", "lingua")),
		Sort:         key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("^s", "ordina")),
		ClearFilters: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("^x", "azzera filtri")),
		Trending:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("^t", "di tendenza")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "indietro")),
		Quit:         key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("^c", "esci")),
	}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Open, k.NextPage, k.PrevPage, k.Genre, k.Year, k.Rating, k.Language, k.Sort, k.ClearFilters, k.Trending, k.Quit}
}
