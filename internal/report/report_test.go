package report

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/vrclog/vrcstats-go/pkg/vrcstats"
	"github.com/vrclog/vrcstats-go/pkg/vrcstats/instance"
)

var updateGolden = flag.Bool("update-golden", false, "update golden files")

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func fixtureReport() *vrcstats.Report {
	totals := vrcstats.NewResult()
	totals.CategoryTime[instance.Friend] = 3 * time.Hour
	totals.CategoryTime[instance.InvitePlus] = time.Hour
	totals.WorldTime["MyWorld"] = 3 * time.Hour
	totals.WorldTime[vrcstats.UnknownWorld] = time.Hour
	totals.WorldVisits["MyWorld"] = 2
	totals.WorldVisits["Club"] = 1234
	totals.DateRange = &vrcstats.DateRange{
		First: vrcstats.Date{Year: 2024, Month: time.January, Day: 1},
		Last:  vrcstats.Date{Year: 2024, Month: time.January, Day: 3},
	}
	return &vrcstats.Report{
		Files: []vrcstats.FileReport{
			{Name: "output_log_2024-01-01_10-00-00.txt", Status: vrcstats.FileFolded},
			{Name: "output_log_2024-01-02_10-00-00.txt", Status: vrcstats.FileEmpty},
			{Name: "output_log_2024-01-03_10-00-00.txt", Status: vrcstats.FileFolded},
		},
		Totals: &totals,
	}
}

// leavesOnlyReport has data but no accounted time and no worlds.
func leavesOnlyReport() *vrcstats.Report {
	totals := vrcstats.NewResult()
	d := vrcstats.Date{Year: 2024, Month: time.March, Day: 9}
	totals.DateRange = &vrcstats.DateRange{First: d, Last: d}
	return &vrcstats.Report{
		Files:  []vrcstats.FileReport{{Name: "output_log_2024-03-09_00-00-00.txt", Status: vrcstats.FileFolded}},
		Totals: &totals,
	}
}

func TestNewSummary(t *testing.T) {
	s, err := NewSummary(fixtureReport(), 0)
	if err != nil {
		t.Fatalf("NewSummary() error = %v", err)
	}

	if s.TotalHours != 4 {
		t.Errorf("TotalHours = %v, want 4", s.TotalHours)
	}
	if len(s.Categories) != len(instance.Categories()) {
		t.Fatalf("len(Categories) = %d, want %d", len(s.Categories), len(instance.Categories()))
	}
	var shares float64
	for _, c := range s.Categories {
		shares += c.Share
	}
	if shares != 1 {
		t.Errorf("sum of shares = %v, want 1", shares)
	}
	if s.Files != (FileCounts{Folded: 2, Empty: 1}) {
		t.Errorf("Files = %+v", s.Files)
	}
	if got := s.TopByVisits[0].Name; got != "Club" {
		t.Errorf("TopByVisits[0] = %q, want Club", got)
	}
}

func TestNewSummary_Top(t *testing.T) {
	s, err := NewSummary(fixtureReport(), 1)
	if err != nil {
		t.Fatalf("NewSummary() error = %v", err)
	}
	if len(s.TopByTime) != 1 || s.TopByTime[0].Name != "MyWorld" {
		t.Errorf("TopByTime = %+v, want only MyWorld", s.TopByTime)
	}
	if len(s.TopByVisits) != 1 {
		t.Errorf("len(TopByVisits) = %d, want 1", len(s.TopByVisits))
	}
}

func TestNewSummary_NoData(t *testing.T) {
	for _, rep := range []*vrcstats.Report{nil, {}} {
		_, err := NewSummary(rep, 10)
		if !errors.Is(err, vrcstats.ErrNoData) {
			t.Errorf("NewSummary() error = %v, want %v", err, vrcstats.ErrNoData)
		}
	}
}

func TestNewSummary_ZeroTime(t *testing.T) {
	s, err := NewSummary(leavesOnlyReport(), 10)
	if err != nil {
		t.Fatalf("NewSummary() error = %v", err)
	}
	for _, c := range s.Categories {
		if c.Share != 0 {
			t.Errorf("Share[%s] = %v, want 0", c.Category, c.Share)
		}
	}
}

func TestPrint_NoColor(t *testing.T) {
	s, err := NewSummary(fixtureReport(), 10)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := NewPrinter(&buf, false).Print(s); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if ansiPattern.MatchString(buf.String()) {
		t.Errorf("Print() without color wrote escape sequences: %q", buf.String())
	}
}

func TestPrint_Color(t *testing.T) {
	s, err := NewSummary(fixtureReport(), 10)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := NewPrinter(&buf, true).Print(s); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if !ansiPattern.MatchString(buf.String()) {
		t.Error("Print() with color wrote no escape sequences")
	}

	var plain bytes.Buffer
	if err := NewPrinter(&plain, false).Print(s); err != nil {
		t.Fatal(err)
	}
	if got := ansiPattern.ReplaceAllString(buf.String(), ""); got != plain.String() {
		t.Errorf("colored output differs from plain output after stripping escapes:\n%s\nvs\n%s", got, plain.String())
	}
}

func TestWorldLabel(t *testing.T) {
	if got := worldLabel(vrcstats.UnknownWorld); got != unknownWorld {
		t.Errorf("worldLabel(UnknownWorld) = %q, want %q", got, unknownWorld)
	}
	long := strings.Repeat("w", 60)
	if got := worldLabel(long); len([]rune(got)) != maxNameWidth || !strings.HasSuffix(got, "…") {
		t.Errorf("worldLabel(long) = %q, want %d runes ending in …", got, maxNameWidth)
	}
}

// TestOutput_Golden tests output formats using golden files.
// Run with -update-golden to update the golden files.
func TestOutput_Golden(t *testing.T) {
	tests := []struct {
		name   string
		report *vrcstats.Report
		json   bool
	}{
		{name: "pretty_summary", report: fixtureReport()},
		{name: "pretty_no_worlds", report: leavesOnlyReport()},
		{name: "json_summary", report: fixtureReport(), json: true},
	}

	// Support both flag and env var for updating golden files
	update := *updateGolden || os.Getenv("UPDATE_GOLDEN") != ""

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSummary(tt.report, 10)
			if err != nil {
				t.Fatalf("NewSummary() error = %v", err)
			}

			var buf bytes.Buffer
			if tt.json {
				err = WriteJSON(&buf, s)
			} else {
				err = NewPrinter(&buf, false).Print(s)
			}
			if err != nil {
				t.Fatalf("output error = %v", err)
			}

			golden := filepath.Join("testdata", "golden", tt.name+".golden")

			if update {
				if err := os.MkdirAll(filepath.Dir(golden), 0755); err != nil {
					t.Fatalf("failed to create golden dir: %v", err)
				}
				if err := os.WriteFile(golden, buf.Bytes(), 0644); err != nil {
					t.Fatalf("failed to write golden file: %v", err)
				}
				t.Logf("updated golden file: %s", golden)
				return
			}

			expected, err := os.ReadFile(golden)
			if err != nil {
				t.Fatalf("failed to read golden file %s: %v\nRun with -update-golden to create it", golden, err)
			}

			got := bytes.ReplaceAll(buf.Bytes(), []byte("\r\n"), []byte("\n"))
			want := bytes.ReplaceAll(expected, []byte("\r\n"), []byte("\n"))

			if !bytes.Equal(got, want) {
				t.Errorf("output mismatch for %s:\ngot:\n%s\nwant:\n%s", golden, got, want)
			}
		})
	}
}
