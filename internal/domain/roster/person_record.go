package roster

import (
	"fmt"

	"github.com/andrescamacho/dronewatch-go/internal/domain/shared"
)

const (
	MinSubClass = 1
	MaxSubClass = 3
)

// PersonRecord is an immutable authored description of a person archetype.
// Identity is (class, sub-class); name and visual are presentation data.
type PersonRecord struct {
	name     string
	visual   string
	class    PersonClass
	subClass int
}

// NewPersonRecord creates a PersonRecord with validation
func NewPersonRecord(name, visual string, class PersonClass, subClass int) (PersonRecord, error) {
	if name == "" {
		return PersonRecord{}, shared.NewValidationError("name", "cannot be empty")
	}
	if !class.IsValid() {
		return PersonRecord{}, shared.NewValidationError("class", fmt.Sprintf("invalid class %q", class))
	}
	if subClass < MinSubClass || subClass > MaxSubClass {
		return PersonRecord{}, shared.NewValidationError("sub_class",
			fmt.Sprintf("must be between %d and %d, got %d", MinSubClass, MaxSubClass, subClass))
	}
	return PersonRecord{name: name, visual: visual, class: class, subClass: subClass}, nil
}

// MustNewPersonRecord panics on invalid input. Intended for built-in catalogs and tests.
func MustNewPersonRecord(name, visual string, class PersonClass, subClass int) PersonRecord {
	r, err := NewPersonRecord(name, visual, class, subClass)
	if err != nil {
		panic(err)
	}
	return r
}

// NewPlayerRecord builds the player's record. Its class sits outside the
// catalog, so it never matches a generated person or shares a wanted class.
func NewPlayerRecord(name string) PersonRecord {
	return PersonRecord{name: name, visual: "player", class: ClassPlayer}
}

// IsPlayer reports whether the record is the player's own
func (r PersonRecord) IsPlayer() bool { return r.class == ClassPlayer }

func (r PersonRecord) Name() string       { return r.name }
func (r PersonRecord) Visual() string     { return r.visual }
func (r PersonRecord) Class() PersonClass { return r.class }
func (r PersonRecord) SubClass() int      { return r.subClass }
func (r PersonRecord) IsZero() bool       { return r.class == "" }

// Key is the stable identity string for the record, e.g. "C2"
func (r PersonRecord) Key() string {
	return fmt.Sprintf("%s%d", r.class, r.subClass)
}

// IsSameClass reports whether both records share a class tag
func (r PersonRecord) IsSameClass(other PersonRecord) bool {
	return r.class == other.class
}

// IsSamePerson reports whether both records describe the same person (class and sub-class)
func (r PersonRecord) IsSamePerson(other PersonRecord) bool {
	return r.class == other.class && r.subClass == other.subClass
}

func (r PersonRecord) String() string {
	return fmt.Sprintf("%s (%s)", r.name, r.Key())
}
