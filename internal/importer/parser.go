package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkelwood/fairway-api/internal/scoring"
)

// Scorecard is a course card lifted from a published HTML scorecard page,
// ready to drop into a game's settings.
type Scorecard struct {
	CourseName  string `json:"course_name"`
	Pars        []int  `json:"pars"`
	StrokeIndex []int  `json:"stroke_index"`
	TotalPar    int    `json:"total_par"`
}

// Parse reads an HTML scorecard page and extracts the hole/par/stroke-index
// table. It handles the common layout where the card is a table with a
// "Hole" header row and labeled "Par" and "S.I." rows, with Out/In/Total
// columns mixed in between the holes.
func Parse(r io.Reader) (*Scorecard, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	card := &Scorecard{
		CourseName: courseName(doc),
	}

	// Pick the table that yields the most holes; course pages often carry
	// extra tables (yardages per tee, green fees).
	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		pars, strokeIndex := parseTable(table)
		if len(pars) > len(card.Pars) {
			card.Pars = pars
			card.StrokeIndex = strokeIndex
		}
	})

	if len(card.Pars) != 9 && len(card.Pars) != 18 {
		return nil, fmt.Errorf("no scorecard table found (got %d holes)", len(card.Pars))
	}

	for _, par := range card.Pars {
		card.TotalPar += par
	}
	return card, nil
}

// parseTable extracts aligned pars and stroke indexes from one table, or
// returns empty slices when the table is not a scorecard.
func parseTable(table *goquery.Selection) (pars, strokeIndex []int) {
	var holeCols []int
	holeNums := make(map[int]int) // column -> hole number
	parCols := make(map[int]int)
	siCols := make(map[int]int)

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() < 2 {
			return
		}
		label := strings.ToLower(strings.TrimSpace(cells.First().Text()))

		switch {
		case strings.HasPrefix(label, "hole"):
			cells.Each(func(col int, cell *goquery.Selection) {
				n, err := strconv.Atoi(strings.TrimSpace(cell.Text()))
				// Only 1..18 are holes; Out/In/Total columns don't parse or
				// fall outside the range.
				if err == nil && n >= 1 && n <= 18 {
					if _, seen := holeNums[col]; !seen {
						holeCols = append(holeCols, col)
					}
					holeNums[col] = n
				}
			})
		case label == "par":
			collectNumbers(cells, parCols)
		case strings.HasPrefix(label, "s.i") || strings.HasPrefix(label, "si") ||
			strings.HasPrefix(label, "stroke") || strings.HasPrefix(label, "index") ||
			strings.HasPrefix(label, "hcp") || strings.HasPrefix(label, "handicap"):
			collectNumbers(cells, siCols)
		}
	})

	for _, col := range holeCols {
		par, okPar := parCols[col]
		si, okSI := siCols[col]
		if !okPar || !okSI || par < 3 || par > 6 || si < 1 || si > 18 {
			return nil, nil
		}
		pars = append(pars, par)
		strokeIndex = append(strokeIndex, si)
	}

	if len(pars) != 9 && len(pars) != 18 {
		return nil, nil
	}
	if len(pars) == 18 {
		if err := validatePermutation(strokeIndex); err != nil {
			return nil, nil
		}
	}
	return pars, strokeIndex
}

func collectNumbers(cells *goquery.Selection, out map[int]int) {
	cells.Each(func(col int, cell *goquery.Selection) {
		if n, err := strconv.Atoi(strings.TrimSpace(cell.Text())); err == nil {
			out[col] = n
		}
	})
}

func validatePermutation(strokeIndex []int) error {
	seen := make(map[int]bool, len(strokeIndex))
	for _, si := range strokeIndex {
		if si < 1 || si > 18 || seen[si] {
			return fmt.Errorf("stroke index is not a permutation of 1..18")
		}
		seen[si] = true
	}
	return nil
}

// HoleConfig converts the imported card into the engine's configuration.
func (c *Scorecard) HoleConfig() scoring.HoleConfig {
	cfg := make(scoring.HoleConfig, 0, len(c.Pars))
	for i := range c.Pars {
		cfg = append(cfg, scoring.Hole{
			Number:      i + 1,
			Par:         c.Pars[i],
			StrokeIndex: c.StrokeIndex[i],
		})
	}
	return cfg
}

func courseName(doc *goquery.Document) string {
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	title := strings.TrimSpace(doc.Find("title").Text())
	if i := strings.IndexAny(title, "|-"); i > 0 {
		title = strings.TrimSpace(title[:i])
	}
	return title
}
