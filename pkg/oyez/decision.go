package oyez

import (
	"strings"

	"supremes/pkg/document"
)

// Ballot is one justice's recorded vote on a decision. Vote is the API's
// free-text category ("majority", "minority", ...), not an enum: source
// values are not constrained.
type Ballot struct {
	Voter Justice
	Vote  string
}

// Decision aggregates the votes on one disposition of a case.
//
// WinningParty is the resolved party label; WinningPartyName keeps the
// API's free text even when resolution fails. An empty WinningParty means
// the free text matched neither party name.
type Decision struct {
	Ballots           []Ballot
	DecisionType      string
	MajorityVoteCount int64
	MinorityVoteCount int64
	WinningPartyName  string
	WinningParty      string
}

func buildBallot(doc document.Document) (Ballot, error) {
	memberDoc, err := doc.Child("vote", "member")
	if err != nil {
		return Ballot{}, err
	}
	voter, err := buildJustice(memberDoc)
	if err != nil {
		return Ballot{}, err
	}
	vote, err := doc.String("vote", "vote")
	if err != nil {
		return Ballot{}, err
	}
	return Ballot{Voter: voter, Vote: vote}, nil
}

func buildDecision(doc document.Document, firstParty string, secondParty string) (Decision, error) {
	var ballots []Ballot
	if voteDocs, ok := doc.OptArray("votes"); ok {
		ballots = make([]Ballot, 0, len(voteDocs))
		for _, vd := range voteDocs {
			// Vote records missing member data degrade to an absent
			// ballot instead of failing the decision.
			ballot, ok := tryBuild(vd, buildBallot)
			if !ok {
				continue
			}
			ballots = append(ballots, ballot)
		}
		if len(ballots) == 0 {
			ballots = nil
		}
	}

	decisionType, _ := doc.OptString("decision_type")
	majority, _ := doc.OptInt("majority_vote")
	minority, _ := doc.OptInt("minority_vote")
	winningPartyName, _ := doc.OptString("winning_party")

	return Decision{
		Ballots:           ballots,
		DecisionType:      decisionType,
		MajorityVoteCount: majority,
		MinorityVoteCount: minority,
		WinningPartyName:  winningPartyName,
		WinningParty:      resolveWinningParty(winningPartyName, firstParty, secondParty),
	}, nil
}

// resolveWinningParty maps the API's free-text winning party onto one of
// the case's party names by case-sensitive substring containment, testing
// the first party before the second so a double match resolves to the
// first. No match leaves the label absent. This reproduces the upstream
// heuristic exactly, including its known weakness when one party name is
// a substring of the other.
func resolveWinningParty(raw string, firstParty string, secondParty string) string {
	if raw == "" {
		return ""
	}
	if strings.Contains(firstParty, raw) {
		return firstParty
	}
	if strings.Contains(secondParty, raw) {
		return secondParty
	}
	return ""
}

// tryBuild runs a builder and converts any construction failure into an
// absent value. Used for the sub-entities that are documented to degrade
// gracefully rather than abort the whole fetch.
func tryBuild[T any](doc document.Document, build func(document.Document) (T, error)) (T, bool) {
	value, err := build(doc)
	if err != nil {
		var zero T
		return zero, false
	}
	return value, true
}
