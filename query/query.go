// Package query describes the searches a repository can run. Callers pick one
// of the named variants instead of handing the store an arbitrary predicate.
package query

import "fmt"

type Kind int

const (
	// TitleContains matches rows whose title contains Text.
	TitleContains Kind = iota + 1
	// TitleEquals matches rows whose title is exactly Text.
	TitleEquals
	// TitleEqualsOtherID matches rows titled Text whose id is not ID.
	TitleEqualsOtherID
	// GenreIs matches rows referencing genre ID.
	GenreIs
)

func (k Kind) String() string {
	switch k {
	case TitleContains:
		return "title_contains"
	case TitleEquals:
		return "title_equals"
	case TitleEqualsOtherID:
		return "title_equals_other_id"
	case GenreIs:
		return "genre_is"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type Query struct {
	Kind Kind
	Text string
	ID   int
}

func ByTitleContains(text string) Query {
	return Query{Kind: TitleContains, Text: text}
}

func ByTitle(title string) Query {
	return Query{Kind: TitleEquals, Text: title}
}

// ByTitleExcluding finds rows holding title under any id other than id.
// Used to check that an update does not collide with another row.
func ByTitleExcluding(title string, id int) Query {
	return Query{Kind: TitleEqualsOtherID, Text: title, ID: id}
}

func ByGenre(genreID int) Query {
	return Query{Kind: GenreIs, ID: genreID}
}
