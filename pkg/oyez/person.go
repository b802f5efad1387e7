package oyez

import (
	"strings"

	"supremes/pkg/document"
)

// Person is the identity record shared by everyone appearing in case data:
// justices on the bench and advocates at the lectern. Transcript speakers
// and recorded voters originate from different API endpoints, so identity
// is a value relation over the display name, not object identity.
//
// Equality is exact (case-sensitive) on Name; ordering compares names
// case-insensitively. The asymmetry is deliberate: two names differing only
// in case are distinct for grouping but rank equal when sorting.
type Person struct {
	ID         int64
	Name       string
	LastName   string
	Identifier string
}

// Equal reports whether two persons are the same identity.
func (p Person) Equal(other Person) bool {
	return p.Name == other.Name
}

// Less orders persons case-insensitively by name.
func (p Person) Less(other Person) bool {
	return p.SortKey() < other.SortKey()
}

// Key is the canonical representation used for map membership and
// grouping. It is consistent with Equal.
func (p Person) Key() string {
	return p.Name
}

// SortKey is the canonical representation used for ordering. It is
// consistent with Less, not with Equal.
func (p Person) SortKey() string {
	return strings.ToLower(p.Name)
}

func (p Person) String() string {
	return p.Name
}

// URL returns the API endpoint for this person's full record.
func (p Person) URL() string {
	return "https://api.oyez.org/people/" + p.Identifier
}

func buildPerson(doc document.Document) (Person, error) {
	id, err := doc.Int("person", "ID")
	if err != nil {
		return Person{}, err
	}
	name, err := doc.String("person", "name")
	if err != nil {
		return Person{}, err
	}
	lastName, err := doc.String("person", "last_name")
	if err != nil {
		return Person{}, err
	}
	identifier, err := doc.String("person", "identifier")
	if err != nil {
		return Person{}, err
	}
	return Person{
		ID:         id,
		Name:       name,
		LastName:   lastName,
		Identifier: identifier,
	}, nil
}

// Role is one appointment term served by a justice. Start and end dates
// come straight from the source and are not validated against each other;
// the upstream data is known to be inconsistent.
type Role struct {
	ID                  string
	Title               string
	Type                string
	AppointingPresident string
	InstitutionName     string
	DateStart           int64
	DateEnd             int64
}

// URL returns the API endpoint for this role.
func (r Role) URL() string {
	return "https://api.oyez.org/person_role/" + r.Type + "/" + r.ID
}

func buildRole(doc document.Document) (Role, error) {
	href, err := doc.String("role", "href")
	if err != nil {
		return Role{}, err
	}
	title, err := doc.String("role", "role_title")
	if err != nil {
		return Role{}, err
	}
	roleType, err := doc.String("role", "type")
	if err != nil {
		return Role{}, err
	}
	institution, err := doc.String("role", "institution_name")
	if err != nil {
		return Role{}, err
	}
	president, _ := doc.OptString("appointing_president")
	dateStart, _ := doc.OptInt("date_start")
	dateEnd, _ := doc.OptInt("date_end")

	return Role{
		ID:                  lastPathSegment(href),
		Title:               title,
		Type:                roleType,
		AppointingPresident: president,
		InstitutionName:     institution,
		DateStart:           dateStart,
		DateEnd:             dateEnd,
	}, nil
}

// Justice is a person who sits on a court, with their appointment history.
type Justice struct {
	Person
	Roles []Role
}

func buildJustice(doc document.Document) (Justice, error) {
	person, err := buildPerson(doc)
	if err != nil {
		return Justice{}, err
	}

	var roles []Role
	if roleDocs, ok := doc.OptArray("roles"); ok {
		roles = make([]Role, 0, len(roleDocs))
		for _, rd := range roleDocs {
			role, err := buildRole(rd)
			if err != nil {
				return Justice{}, err
			}
			roles = append(roles, role)
		}
	}
	return Justice{Person: person, Roles: roles}, nil
}

// Advocate is a person who argued before the court in a specific case.
// CaseAdvocateID is the final path segment of the case-advocate href, an
// opaque identifier that is not validated as numeric.
type Advocate struct {
	Person
	CaseAdvocateID string
	Description    string
}

// URL returns the API endpoint for this case-advocate record.
func (a Advocate) URL() string {
	return "https://api.oyez.org/case_advocate/case_advocate/" + a.CaseAdvocateID
}

func buildAdvocate(doc document.Document) (Advocate, error) {
	href, err := doc.String("advocate", "href")
	if err != nil {
		return Advocate{}, err
	}
	personDoc, err := doc.Child("advocate", "advocate")
	if err != nil {
		return Advocate{}, err
	}
	person, err := buildPerson(personDoc)
	if err != nil {
		return Advocate{}, err
	}
	description, _ := doc.OptString("advocate_description")

	return Advocate{
		Person:         person,
		CaseAdvocateID: lastPathSegment(href),
		Description:    description,
	}, nil
}

func lastPathSegment(href string) string {
	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}
	return href
}
