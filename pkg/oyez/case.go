package oyez

import (
	"context"

	"supremes/pkg/document"
)

// Case is the root of the entity graph built from one case document.
// Every list field is absent (nil) when the source document has no data
// for it; an absent list is never represented as an empty one.
type Case struct {
	Term         string
	DocketNumber string
	ID           int64
	FirstParty   string
	SecondParty  string
	Description  string
	Name         string

	Advocates   []Advocate
	Decisions   []Decision
	HeardBy     []*Court
	DecidedBy   []*Court
	Transcripts []Transcript
}

func (c *Case) String() string {
	return c.DocketNumber + ": " + c.Name
}

// buildCase expands a case document into its full entity graph. Each
// oral-argument-audio reference triggers one further fetch for the
// transcript body, sequentially, in source order. Everything else is pure
// in-memory construction.
func (c *Client) buildCase(ctx context.Context, doc document.Document) (*Case, error) {
	term, err := doc.String("case", "term")
	if err != nil {
		return nil, err
	}
	docket, err := doc.String("case", "docket_number")
	if err != nil {
		return nil, err
	}
	id, err := doc.Int("case", "ID")
	if err != nil {
		return nil, err
	}
	firstParty, err := doc.String("case", "first_party")
	if err != nil {
		return nil, err
	}
	secondParty, err := doc.String("case", "second_party")
	if err != nil {
		return nil, err
	}
	description, err := doc.String("case", "description")
	if err != nil {
		return nil, err
	}
	name, err := doc.String("case", "name")
	if err != nil {
		return nil, err
	}

	built := &Case{
		Term:         term,
		DocketNumber: docket,
		ID:           id,
		FirstParty:   firstParty,
		SecondParty:  secondParty,
		Description:  description,
		Name:         name,
	}

	if advocateDocs, ok := doc.OptArray("advocates"); ok {
		advocates := make([]Advocate, 0, len(advocateDocs))
		for _, ad := range advocateDocs {
			advocate, err := buildAdvocate(ad)
			if err != nil {
				return nil, err
			}
			advocates = append(advocates, advocate)
		}
		built.Advocates = advocates
	}

	if decisionDocs, ok := doc.OptArray("decisions"); ok {
		decisions := make([]Decision, 0, len(decisionDocs))
		for _, dd := range decisionDocs {
			decision, err := buildDecision(dd, firstParty, secondParty)
			if err != nil {
				return nil, err
			}
			decisions = append(decisions, decision)
		}
		built.Decisions = decisions
	}

	built.HeardBy, err = buildCourts(doc, "heard_by")
	if err != nil {
		return nil, err
	}
	built.DecidedBy, err = buildCourts(doc, "decided_by")
	if err != nil {
		return nil, err
	}

	if audioDocs, ok := doc.OptArray("oral_argument_audio"); ok {
		transcripts := make([]Transcript, 0, len(audioDocs))
		for _, ad := range audioDocs {
			audioID, err := ad.Int("oral argument audio", "id")
			if err != nil {
				return nil, err
			}
			transcript, err := c.TranscriptByID(ctx, audioID)
			if err != nil {
				return nil, err
			}
			transcripts = append(transcripts, transcript)
		}
		built.Transcripts = transcripts
	}

	return built, nil
}

// buildCourts projects an optional list of court references. Individual
// references that degrade to absent (placeholder strings, nulls) are
// dropped; a list left with nothing becomes absent as a whole.
func buildCourts(doc document.Document, field string) ([]*Court, error) {
	courtDocs, ok := doc.OptArray(field)
	if !ok {
		return nil, nil
	}
	courts := make([]*Court, 0, len(courtDocs))
	for _, cd := range courtDocs {
		court, err := buildCourt(cd)
		if err != nil {
			return nil, err
		}
		if court == nil {
			continue
		}
		courts = append(courts, court)
	}
	if len(courts) == 0 {
		return nil, nil
	}
	return courts, nil
}
