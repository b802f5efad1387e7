package speech

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"supremes/pkg/oyez"
)

// Row joins one speaker's speech with their recorded vote on a case.
type Row struct {
	Speaker      oyez.Person
	Term         string
	DocketNumber string
	Text         string
	Vote         string
}

// Table is the per-speaker analysis table for one case.
type Table struct {
	Rows []Row
}

// TableParams contains configuration for building a table. The zero value
// groups rows per speaker, which is the default callers want.
type TableParams struct {
	// Ungrouped keeps one row per joined utterance instead of grouping
	// per (speaker, term, docket).
	Ungrouped bool
}

// FromCase builds the speaker table for a case by joining transcript
// utterances against the ballots of the first decision.
//
// Only the first decision's ballots feed the vote side of the join; later
// decisions (rehearings) are modeled on the Case but not merged here. A
// case without decisions or ballots yields no table at all (nil, since
// that reflects genuinely missing source data, not a failure). Utterances
// whose speaker is absent or matches no voter are dropped: the join is an
// inner join on exact-name person identity.
func FromCase(c *oyez.Case, params TableParams) *Table {
	if c == nil || len(c.Decisions) == 0 || len(c.Decisions[0].Ballots) == 0 {
		return nil
	}
	ballots := c.Decisions[0].Ballots

	votes := make(map[string]string, len(ballots))
	for _, b := range ballots {
		if _, ok := votes[b.Voter.Key()]; !ok {
			votes[b.Voter.Key()] = b.Vote
		}
	}

	var rows []Row
	if len(c.Transcripts) == 0 {
		// No speech to join: synthesize one empty-text row per voter so
		// the votes still surface.
		for _, b := range ballots {
			rows = append(rows, Row{
				Speaker:      b.Voter.Person,
				Term:         c.Term,
				DocketNumber: c.DocketNumber,
				Vote:         votes[b.Voter.Key()],
			})
		}
	} else {
		for _, transcript := range c.Transcripts {
			for _, u := range transcript.Utterances {
				if u.Speaker == nil {
					continue
				}
				vote, ok := votes[u.Speaker.Key()]
				if !ok {
					continue
				}
				rows = append(rows, Row{
					Speaker:      *u.Speaker,
					Term:         c.Term,
					DocketNumber: c.DocketNumber,
					Text:         u.Text,
					Vote:         vote,
				})
			}
		}
	}

	if params.Ungrouped {
		return &Table{Rows: rows}
	}
	return &Table{Rows: group(rows)}
}

// group collapses rows to one per (speaker, term, docket), concatenating
// text values in row order with a single space and keeping the first vote
// (ballots are uniform per voter). Output is sorted by the speaker's
// case-insensitive sort key, then term and docket, for determinism.
func group(rows []Row) []Row {
	type aggregate struct {
		row   Row
		texts []string
	}

	index := make(map[string]*aggregate)
	var order []string
	for _, r := range rows {
		key := r.Speaker.Key() + "\x1f" + r.Term + "\x1f" + r.DocketNumber
		agg, ok := index[key]
		if !ok {
			agg = &aggregate{row: r}
			index[key] = agg
			order = append(order, key)
		}
		if r.Text != "" {
			agg.texts = append(agg.texts, r.Text)
		}
	}

	grouped := make([]Row, 0, len(order))
	for _, key := range order {
		agg := index[key]
		agg.row.Text = strings.Join(agg.texts, " ")
		grouped = append(grouped, agg.row)
	}

	sort.SliceStable(grouped, func(i, j int) bool {
		a, b := grouped[i], grouped[j]
		if a.Speaker.SortKey() != b.Speaker.SortKey() {
			return a.Speaker.SortKey() < b.Speaker.SortKey()
		}
		if a.Term != b.Term {
			return a.Term < b.Term
		}
		return a.DocketNumber < b.DocketNumber
	})
	return grouped
}

// Append concatenates another table's rows onto this one, preserving row
// order. Used by callers assembling a multi-case dataset.
func (t *Table) Append(other *Table) {
	if other == nil {
		return
	}
	t.Rows = append(t.Rows, other.Rows...)
}

// WriteCSV writes the table with a header row.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"speaker", "term", "docket_number", "text", "vote"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range t.Rows {
		record := []string{r.Speaker.Name, r.Term, r.DocketNumber, r.Text, r.Vote}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
