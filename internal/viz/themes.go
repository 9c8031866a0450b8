package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Series pairs a chart color with the lipgloss color used for its legend.
type Series struct {
	Chart  asciigraph.AnsiColor
	Legend lipgloss.Color
}

// Theme colors the charts. Series[0] is reserved for the analytical curve;
// methods and step sizes take the remaining entries in order.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Series  []Series
}

var (
	ThemeClassic = Theme{
		Name:    "classic",
		Primary: lipgloss.Color("#00ffff"),
		Muted:   lipgloss.Color("#666666"),
		Series: []Series{
			{asciigraph.Default, lipgloss.Color("7")},
			{asciigraph.Red, lipgloss.Color("1")},
			{asciigraph.Green, lipgloss.Color("2")},
			{asciigraph.Blue, lipgloss.Color("4")},
			{asciigraph.Yellow, lipgloss.Color("3")},
			{asciigraph.Magenta, lipgloss.Color("5")},
		},
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#0077be"),
		Muted:   lipgloss.Color("#4488aa"),
		Series: []Series{
			{asciigraph.White, lipgloss.Color("15")},
			{asciigraph.Cyan, lipgloss.Color("6")},
			{asciigraph.Blue, lipgloss.Color("4")},
			{asciigraph.Green, lipgloss.Color("2")},
			{asciigraph.Magenta, lipgloss.Color("5")},
		},
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Series: []Series{
			{asciigraph.Default, lipgloss.Color("7")},
		},
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeOcean,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// series returns the i-th color, cycling past the end of the palette.
func (t Theme) series(i int) Series {
	if len(t.Series) == 0 {
		return Series{asciigraph.Default, lipgloss.Color("7")}
	}
	return t.Series[i%len(t.Series)]
}
