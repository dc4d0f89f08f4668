package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/vrclog/vrcstats-go/pkg/vrcstats"
	"github.com/vrclog/vrcstats-go/pkg/vrcstats/instance"
)

const (
	barWidth      = 20
	filledBlock   = "█"
	emptyBlock    = "░"
	maxNameWidth  = 40
	unknownWorld  = "(unknown world)"
	noWorldsLabel = "(no worlds)"
)

// Printer writes summaries as terminal text.
type Printer struct {
	w      io.Writer
	styles styles
}

// NewPrinter returns a Printer writing to w. When color is false the
// output contains no escape sequences.
func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, styles: newStyles(newRenderer(w, color))}
}

// Print writes the four report sections: category share, category hours,
// worlds by time and worlds by visits.
func (p *Printer) Print(s *Summary) error {
	var b strings.Builder

	b.WriteString(p.styles.bold.Render(fmt.Sprintf("VRChat activity %s to %s", s.DateRange.First, s.DateRange.Last)))
	b.WriteString("\n")
	b.WriteString(p.styles.dim.Render(fmt.Sprintf("files: %s folded, %s empty, %s failed",
		humanize.Comma(int64(s.Files.Folded)),
		humanize.Comma(int64(s.Files.Empty)),
		humanize.Comma(int64(s.Files.Failed)))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("total: %sh\n", formatHours(s.TotalHours)))

	b.WriteString("\n")
	b.WriteString(p.section("Categories"))
	rows := make([][]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		rows = append(rows, []string{string(c.Category), p.bar(c.Category, c.Share), formatHours(c.Hours)})
	}
	b.WriteString(p.table([]string{"category", "share", "hours"}, rows))

	b.WriteString("\n")
	b.WriteString(p.section("Top worlds by time"))
	b.WriteString(p.worlds(s.TopByTime, []string{"#", "world", "hours", "visits"}, func(w vrcstats.WorldStat) []string {
		return []string{formatHours(w.Hours), humanize.Comma(int64(w.Visits))}
	}))

	b.WriteString("\n")
	b.WriteString(p.section("Top worlds by visits"))
	b.WriteString(p.worlds(s.TopByVisits, []string{"#", "world", "visits", "hours"}, func(w vrcstats.WorldStat) []string {
		return []string{humanize.Comma(int64(w.Visits)), formatHours(w.Hours)}
	}))

	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *Printer) section(title string) string {
	upper := strings.ToUpper(title)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return p.styles.header.Render(upper) + "\n" + p.styles.dim.Render(line) + "\n"
}

func (p *Printer) worlds(stats []vrcstats.WorldStat, headers []string, cells func(vrcstats.WorldStat) []string) string {
	if len(stats) == 0 {
		return p.styles.dim.Render(noWorldsLabel) + "\n"
	}
	rows := make([][]string, 0, len(stats))
	for i, w := range stats {
		row := []string{strconv.Itoa(i + 1), worldLabel(w.Name)}
		rows = append(rows, append(row, cells(w)...))
	}
	return p.table(headers, rows)
}

// bar renders a share like [████░░░░]  45%.
func (p *Printer) bar(c instance.Category, share float64) string {
	share = min(max(share, 0), 1)
	filled := min(int(share*barWidth), barWidth)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, barWidth-filled)
	return fmt.Sprintf("[%s] %3.0f%%", p.styles.bars[c].Render(bar), share*100)
}

func worldLabel(name string) string {
	if name == vrcstats.UnknownWorld {
		return unknownWorld
	}
	return runewidth.Truncate(name, maxNameWidth, "…")
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}
