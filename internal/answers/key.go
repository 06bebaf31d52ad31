package answers

import (
	"fmt"
	"strconv"
	"strings"
)

// Separator joins the segments of an answer key.
const Separator = "_"

// Key addresses one question's answer within a session:
// category title, subcategory title and question id joined by Separator.
type Key string

// NewKey builds the key for a (category, subcategory, question) triple.
func NewKey(category, subcategory string, questionID int) Key {
	return Key(SubcategoryPrefix(category, subcategory) + strconv.Itoa(questionID))
}

// SubcategoryPrefix returns the prefix shared by every key of a subcategory,
// including the trailing separator.
func SubcategoryPrefix(category, subcategory string) string {
	return category + Separator + subcategory + Separator
}

// Parts is the decoded form of a Key.
type Parts struct {
	Category    string
	Subcategory string
	QuestionID  int
}

// ParseKey splits a key into its parts. The category is the first segment,
// the question id the last, and everything in between is the subcategory.
// The id must be written the way NewKey writes it, so one question has
// exactly one key.
func ParseKey(k string) (Parts, error) {
	segs := strings.Split(k, Separator)
	if len(segs) < 3 {
		return Parts{}, fmt.Errorf("answer key %q: want at least 3 segments, got %d", k, len(segs))
	}
	last := segs[len(segs)-1]
	id, err := strconv.Atoi(last)
	if err != nil {
		return Parts{}, fmt.Errorf("answer key %q: question id: %w", k, err)
	}
	if strconv.Itoa(id) != last {
		return Parts{}, fmt.Errorf("answer key %q: question id %q is not canonical", k, last)
	}
	return Parts{
		Category:    segs[0],
		Subcategory: strings.Join(segs[1:len(segs)-1], Separator),
		QuestionID:  id,
	}, nil
}

func (k Key) String() string { return string(k) }
