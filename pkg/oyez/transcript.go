package oyez

import "supremes/pkg/document"

// Utterance is one contiguous speech turn. Text is the space-joined
// concatenation of the turn's text blocks in source order. Speaker is nil
// when the turn carries no usable speaker metadata. Start and End are
// second offsets into the argument audio, zero when the turn has none.
type Utterance struct {
	Speaker *Person
	Text    string
	Start   float64
	End     float64
}

// Transcript is the turn-by-turn record of one oral argument.
type Transcript struct {
	ID         int64
	Title      string
	Utterances []Utterance
}

func (t Transcript) String() string {
	return t.Title
}

// URL returns the API endpoint serving this transcript.
func (t Transcript) URL() string {
	return transcriptURL("https://api.oyez.org", t.ID)
}

func buildTranscript(doc document.Document) (Transcript, error) {
	id, err := doc.Int("transcript", "id")
	if err != nil {
		return Transcript{}, err
	}
	title, err := doc.String("transcript", "title")
	if err != nil {
		return Transcript{}, err
	}

	transcript := Transcript{ID: id, Title: title}

	// Arguments without processed audio have a null transcript body.
	body, ok := doc.OptChild("transcript")
	if !ok {
		return transcript, nil
	}
	sectionDocs, err := body.Array("transcript", "sections")
	if err != nil {
		return Transcript{}, err
	}

	var utterances []Utterance
	for _, sd := range sectionDocs {
		turnDocs, err := sd.Array("transcript section", "turns")
		if err != nil {
			return Transcript{}, err
		}
		for _, td := range turnDocs {
			utterance, err := buildUtterance(td)
			if err != nil {
				return Transcript{}, err
			}
			utterances = append(utterances, utterance)
		}
	}
	transcript.Utterances = utterances
	return transcript, nil
}

func buildUtterance(doc document.Document) (Utterance, error) {
	blockDocs, err := doc.Array("turn", "text_blocks")
	if err != nil {
		return Utterance{}, err
	}
	text := ""
	for i, bd := range blockDocs {
		block, err := bd.String("text block", "text")
		if err != nil {
			return Utterance{}, err
		}
		if i > 0 {
			text += " "
		}
		text += block
	}

	// A turn without speaker metadata is still speech worth keeping; the
	// speaker degrades to absent rather than failing the transcript.
	var speaker *Person
	if spDoc, ok := doc.OptChild("speaker"); ok {
		if person, ok := tryBuild(spDoc, buildPerson); ok {
			speaker = &person
		}
	}

	start, _ := doc.OptFloat("start")
	end, _ := doc.OptFloat("stop")

	return Utterance{
		Speaker: speaker,
		Text:    text,
		Start:   start,
		End:     end,
	}, nil
}
