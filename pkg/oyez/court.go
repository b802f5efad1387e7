package oyez

import "supremes/pkg/document"

// Court is a bench composition: the set of justices sitting when a case
// was heard or decided.
type Court struct {
	ID         int64
	Identifier string
	Name       string
	Justices   []Justice
}

func (c *Court) String() string {
	return c.Name
}

// buildCourt converts a court document into a Court. The API sometimes
// serves a bare placeholder string or nothing at all where a court object
// belongs; both degrade to an absent court (nil, no error). A real court
// object with an empty members list yields a Court with an empty, non-nil
// justice list.
func buildCourt(doc document.Document) (*Court, error) {
	if _, ok := doc.AsString(); ok {
		return nil, nil
	}
	if doc.IsEmpty() {
		return nil, nil
	}

	id, err := doc.Int("court", "ID")
	if err != nil {
		return nil, err
	}
	identifier, err := doc.String("court", "identifier")
	if err != nil {
		return nil, err
	}
	name, err := doc.String("court", "name")
	if err != nil {
		return nil, err
	}
	memberDocs, err := doc.Array("court", "members")
	if err != nil {
		return nil, err
	}

	justices := make([]Justice, 0, len(memberDocs))
	for _, md := range memberDocs {
		justice, err := buildJustice(md)
		if err != nil {
			return nil, err
		}
		justices = append(justices, justice)
	}

	return &Court{
		ID:         id,
		Identifier: identifier,
		Name:       name,
		Justices:   justices,
	}, nil
}
