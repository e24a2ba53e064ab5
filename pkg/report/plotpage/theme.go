package plotpage

// Theme represents a color theme for visualizations.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ThemeConfig holds the chart styling values of a theme.
type ThemeConfig struct {
	Background string

	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// ECharts theme name.
	EChartsTheme string
}

// ChartPalette is a consistent color palette for charts.
type ChartPalette struct {
	Cluster string
	Gap     string
	Neutral string

	// Severity colors for z-score magnitudes.
	Low    string
	Medium string
	High   string
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	switch theme {
	case ThemeDark:
		return darkTheme
	case ThemeLight:
		return lightTheme
	default:
		return lightTheme
	}
}

// GetChartPalette returns the chart color palette for a given theme.
func GetChartPalette(theme Theme) ChartPalette {
	switch theme {
	case ThemeDark:
		return darkChartPalette
	case ThemeLight:
		return lightChartPalette
	default:
		return lightChartPalette
	}
}

// ParseTheme maps a name to a Theme, falling back to ThemeDark.
func ParseTheme(name string) Theme {
	if Theme(name) == ThemeLight {
		return ThemeLight
	}

	return ThemeDark
}

var lightTheme = ThemeConfig{
	Background: "#fafaf9", // stone-50.

	ChartBackground: "transparent",
	ChartGrid:       "#e7e5e4", // stone-200.
	ChartAxis:       "#a8a29e", // stone-400.
	ChartText:       "#44403c", // stone-700.
	ChartTextMuted:  "#78716c", // stone-500.

	EChartsTheme: "",
}

var darkTheme = ThemeConfig{
	Background: "#0c0a09", // stone-950.

	ChartBackground: "transparent",
	ChartGrid:       "#44403c", // stone-700.
	ChartAxis:       "#57534e", // stone-600.
	ChartText:       "#d6d3d1", // stone-300.
	ChartTextMuted:  "#a8a29e", // stone-400.

	EChartsTheme: "",
}

var lightChartPalette = ChartPalette{
	Cluster: "#0369a1", // sky-700.
	Gap:     "#a16207", // amber-700.
	Neutral: "#78716c", // stone-500.
	Low:     "#16a34a", // green-600.
	Medium:  "#ca8a04", // yellow-600.
	High:    "#dc2626", // red-600.
}

var darkChartPalette = ChartPalette{
	Cluster: "#38bdf8", // sky-400.
	Gap:     "#fbbf24", // amber-400.
	Neutral: "#a8a29e", // stone-400.
	Low:     "#22c55e", // green-500.
	Medium:  "#eab308", // yellow-500.
	High:    "#ef4444", // red-500.
}
