package dashboard

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const leaderboardSize = 5

// Tile is one leaderboard card.
type Tile struct {
	Label   string
	Value   string
	Delta   string
	Caption string
	Funding string
}

// TopCandidates returns up to n startups not yet successful, ranked by
// relationships then total funding, both descending with NaN last.
// Ties keep dataset order.
func TopCandidates(d *Dataset, n int) []Startup {
	if d == nil {
		return nil
	}
	candidates := make([]Startup, 0)
	for _, s := range d.Startups {
		if s.IsSuccess == 0 {
			candidates = append(candidates, s)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if c := compareDesc(candidates[i].Relationships, candidates[j].Relationships); c != 0 {
			return c < 0
		}
		return compareDesc(candidates[i].TotalFundingUSD, candidates[j].TotalFundingUSD) < 0
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// compareDesc orders a before b (-1) when a is larger; NaN sorts after every number.
func compareDesc(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}

func Leaderboard(d *Dataset) []Tile {
	printer := message.NewPrinter(language.French)

	top := TopCandidates(d, leaderboardSize)
	tiles := make([]Tile, 0, len(top))
	for _, s := range top {
		tiles = append(tiles, Tile{
			Label:   s.Name,
			Value:   relationshipsLabel(s.Relationships),
			Delta:   "Haut Potentiel",
			Caption: "Secteur : " + s.CategoryCode,
			Funding: fundingLabel(printer, s.TotalFundingUSD),
		})
	}
	return tiles
}

func relationshipsLabel(v float64) string {
	if math.IsNaN(v) {
		return "n/d Rel."
	}
	return fmt.Sprintf("%d Rel.", int64(v))
}

func fundingLabel(printer *message.Printer, v float64) string {
	if math.IsNaN(v) {
		return "Levée : n/d"
	}
	return printer.Sprintf("Levée : %d USD", int64(math.Round(v)))
}
