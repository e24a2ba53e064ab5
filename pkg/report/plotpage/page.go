package plotpage

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/components"
)

// Page is a single HTML document holding one or more charts.
type Page struct {
	Title  string
	Theme  Theme
	Charts []components.Charter
}

// NewPage creates a new visualization page with the dark theme.
func NewPage(title string) *Page {
	return &Page{Title: title, Theme: ThemeDark}
}

// WithTheme sets the theme for the page.
func (p *Page) WithTheme(theme Theme) *Page {
	p.Theme = theme

	return p
}

// Add appends charts to the page.
func (p *Page) Add(charts ...components.Charter) {
	p.Charts = append(p.Charts, charts...)
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = p.Title
	page.BackgroundColor = GetThemeConfig(p.Theme).Background
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(p.Charts...)

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	return nil
}
