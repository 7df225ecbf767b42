package roster

import "fmt"

// PersonClass is the coarse grouping tag shared by many person records.
// The wanted list never contains two records of the same class.
type PersonClass string

const (
	ClassA PersonClass = "A"
	ClassB PersonClass = "B"
	ClassC PersonClass = "C"
	ClassD PersonClass = "D"
	ClassE PersonClass = "E"
	ClassF PersonClass = "F"
	ClassG PersonClass = "G"
	ClassH PersonClass = "H"
	ClassI PersonClass = "I"
	ClassJ PersonClass = "J"

	// ClassPlayer tags the player's own record. It is never part of the catalog.
	ClassPlayer PersonClass = "PLAYER"
)

// AllClasses returns every class in declaration order
func AllClasses() []PersonClass {
	return []PersonClass{ClassA, ClassB, ClassC, ClassD, ClassE, ClassF, ClassG, ClassH, ClassI, ClassJ}
}

func (c PersonClass) String() string {
	return string(c)
}

func (c PersonClass) IsValid() bool {
	switch c {
	case ClassA, ClassB, ClassC, ClassD, ClassE, ClassF, ClassG, ClassH, ClassI, ClassJ:
		return true
	default:
		return false
	}
}

// ParsePersonClass parses a string into a PersonClass
func ParsePersonClass(s string) (PersonClass, error) {
	c := PersonClass(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid person class: %s", s)
	}
	return c, nil
}
