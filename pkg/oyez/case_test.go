package oyez

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"supremes/pkg/document"
)

// cannedFetcher serves decoded fixtures by URL and records every fetch.
type cannedFetcher struct {
	docs  map[string]any
	calls []string
}

func (f *cannedFetcher) FetchJSON(ctx context.Context, url string) (document.Document, error) {
	f.calls = append(f.calls, url)
	value, ok := f.docs[url]
	if !ok {
		return document.Document{}, fmt.Errorf("no canned document for %s", url)
	}
	return document.FromValue(value), nil
}

func justiceDoc(id int64, name string) map[string]any {
	return map[string]any{
		"ID":         float64(id),
		"name":       name,
		"last_name":  name,
		"identifier": name,
	}
}

func turnDoc(speaker any, blocks ...string) map[string]any {
	textBlocks := make([]any, len(blocks))
	for i, b := range blocks {
		textBlocks[i] = map[string]any{"text": b}
	}
	turn := map[string]any{
		"text_blocks": textBlocks,
		"start":       float64(0),
		"stop":        float64(30),
	}
	if speaker != nil {
		turn["speaker"] = speaker
	}
	return turn
}

func caseFixture() map[string]any {
	return map[string]any{
		"term":          "2014",
		"docket_number": "14-556",
		"ID":            float64(62363),
		"first_party":   "Obergefell",
		"second_party":  "Hodges",
		"description":   "A case about marriage.",
		"name":          "Obergefell v. Hodges",
		"advocates": []any{
			map[string]any{
				"href":                 "https://api.oyez.org/case_advocate/case_advocate/22476",
				"advocate_description": "For the petitioners",
				"advocate": map[string]any{
					"ID":         float64(33336),
					"name":       "Mary L. Bonauto",
					"last_name":  "Bonauto",
					"identifier": "mary_l_bonauto",
				},
			},
		},
		"decisions": []any{
			map[string]any{
				"votes": []any{
					map[string]any{"vote": "majority", "member": justiceDoc(10, "Anthony M. Kennedy")},
					map[string]any{"vote": "minority", "member": justiceDoc(11, "Antonin Scalia")},
				},
				"majority_vote": float64(5),
				"minority_vote": float64(4),
				"winning_party": "Obergefell",
			},
		},
		"heard_by": []any{
			map[string]any{
				"ID":         float64(4),
				"identifier": "roberts8",
				"name":       "Roberts Court",
				"members":    []any{justiceDoc(10, "Anthony M. Kennedy")},
			},
		},
		"decided_by": []any{"Roberts Court"}, // placeholder string quirk
		"oral_argument_audio": []any{
			map[string]any{"id": float64(23823), "href": "https://api.oyez.org/case_media/oral_argument_audio/23823"},
		},
	}
}

func transcriptFixture() map[string]any {
	return map[string]any{
		"id":    float64(23823),
		"title": "Obergefell v. Hodges - Question 1",
		"transcript": map[string]any{
			"sections": []any{
				map[string]any{
					"turns": []any{
						turnDoc(justiceDoc(10, "Anthony M. Kennedy"), "Good", "morning."),
						turnDoc(nil, "Off the record."),
					},
				},
			},
		},
	}
}

func newTestClient(fetcher *cannedFetcher) *Client {
	return NewClient(NewClientParams{Fetcher: fetcher})
}

func TestCaseByDocket(t *testing.T) {
	caseURL := "https://api.oyez.org/cases/2014/14-556"
	argumentURL := "https://api.oyez.org/case_media/oral_argument_audio/23823"

	newFetcher := func() *cannedFetcher {
		return &cannedFetcher{docs: map[string]any{
			caseURL:     caseFixture(),
			argumentURL: transcriptFixture(),
		}}
	}

	t.Run("BuildsFullGraph", func(t *testing.T) {
		fetcher := newFetcher()
		c, err := newTestClient(fetcher).CaseByDocket(context.Background(), "2014", "14-556")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if c.Term != "2014" || c.DocketNumber != "14-556" || c.ID != 62363 {
			t.Fatalf("unexpected case header: %+v", c)
		}
		if len(c.Advocates) != 1 {
			t.Fatalf("unexpected advocate count: got %d", len(c.Advocates))
		}
		if c.Advocates[0].CaseAdvocateID != "22476" {
			t.Fatalf("advocate ID not derived from href: %q", c.Advocates[0].CaseAdvocateID)
		}
		if len(c.Decisions) != 1 || len(c.Decisions[0].Ballots) != 2 {
			t.Fatalf("unexpected decisions: %+v", c.Decisions)
		}
		if c.Decisions[0].WinningParty != "Obergefell" {
			t.Fatalf("unexpected winning party: %q", c.Decisions[0].WinningParty)
		}
		if len(c.HeardBy) != 1 {
			t.Fatalf("unexpected heard_by: %+v", c.HeardBy)
		}
		// The decided_by list held only a placeholder string, so the
		// whole list is absent.
		if c.DecidedBy != nil {
			t.Fatalf("expected absent decided_by, got %+v", c.DecidedBy)
		}
		if len(c.Transcripts) != 1 {
			t.Fatalf("unexpected transcript count: got %d", len(c.Transcripts))
		}

		utterances := c.Transcripts[0].Utterances
		if len(utterances) != 2 {
			t.Fatalf("unexpected utterance count: got %d", len(utterances))
		}
		if utterances[0].Text != "Good morning." {
			t.Fatalf("text blocks not space-joined: %q", utterances[0].Text)
		}
		if utterances[0].Speaker == nil || utterances[0].Speaker.Name != "Anthony M. Kennedy" {
			t.Fatalf("unexpected speaker: %+v", utterances[0].Speaker)
		}
		if utterances[1].Speaker != nil {
			t.Fatal("speakerless turn should have an absent speaker")
		}
	})

	t.Run("TranscriptFetchedPerAudioReference", func(t *testing.T) {
		fetcher := newFetcher()
		if _, err := newTestClient(fetcher).CaseByDocket(context.Background(), "2014", "14-556"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{caseURL, argumentURL}
		if !reflect.DeepEqual(fetcher.calls, want) {
			t.Fatalf("unexpected fetch sequence: got %v, want %v", fetcher.calls, want)
		}
	})

	t.Run("TwoFetchesProduceIndependentEqualGraphs", func(t *testing.T) {
		fetcher := newFetcher()
		client := newTestClient(fetcher)
		first, err := client.CaseByDocket(context.Background(), "2014", "14-556")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := client.CaseByDocket(context.Background(), "2014", "14-556")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first == second {
			t.Fatal("fetches must not share graph instances")
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatal("independent fetches should be structurally equal")
		}
	})

	t.Run("MissingRequiredFieldIsHardError", func(t *testing.T) {
		fixture := caseFixture()
		delete(fixture, "first_party")
		fetcher := &cannedFetcher{docs: map[string]any{caseURL: fixture}}
		_, err := newTestClient(fetcher).CaseByDocket(context.Background(), "2014", "14-556")
		if err == nil {
			t.Fatal("expected error for missing first_party")
		}
	})

	t.Run("AbsentOptionalListsStayNil", func(t *testing.T) {
		fixture := caseFixture()
		fixture["oral_argument_audio"] = nil
		fixture["advocates"] = []any{}
		delete(fixture, "heard_by")
		fetcher := &cannedFetcher{docs: map[string]any{caseURL: fixture}}
		c, err := newTestClient(fetcher).CaseByDocket(context.Background(), "2014", "14-556")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Transcripts != nil || c.Advocates != nil || c.HeardBy != nil {
			t.Fatalf("optional lists should be absent, got %+v", c)
		}
	})
}

func TestCasesForTerm(t *testing.T) {
	termURL := "https://api.oyez.org/cases?per_page=0&filter=term:2014"
	fetcher := &cannedFetcher{docs: map[string]any{
		termURL: []any{
			map[string]any{
				"ID":            float64(62363),
				"term":          "2014",
				"docket_number": "14-556",
				"name":          "Obergefell v. Hodges",
				"href":          "https://api.oyez.org/cases/2014/14-556",
			},
		},
	}}

	summaries, err := newTestClient(fetcher).CasesForTerm(context.Background(), "2014")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("unexpected summary count: got %d", len(summaries))
	}
	s := summaries[0]
	if s.DocketNumber != "14-556" || s.Name != "Obergefell v. Hodges" || s.ID != 62363 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestTranscriptWithoutBody(t *testing.T) {
	doc := document.FromValue(map[string]any{
		"id":         float64(100),
		"title":      "Unprocessed argument",
		"transcript": nil,
	})
	transcript, err := buildTranscript(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transcript.Utterances != nil {
		t.Fatalf("expected absent utterances, got %v", transcript.Utterances)
	}
	if transcript.Title != "Unprocessed argument" {
		t.Fatalf("unexpected title: %q", transcript.Title)
	}
}
