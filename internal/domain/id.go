package domain

import "strconv"

// KeyKind tells simple keys from composite ones.
type KeyKind int

const (
	SimpleKey KeyKind = iota + 1
	CompositeKey
)

// ID is the integer identifier assigned by the store to an entity.
type ID int64

func (id ID) Kind() KeyKind { return SimpleKey }

func (id ID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseID parses the decimal form of an ID.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(n), nil
}

// CompositeID identifies a link entity by the pair of entities it associates.
// Neither component is unique on its own.
type CompositeID struct {
	Parent ID
	Child  ID
}

func (id CompositeID) Kind() KeyKind { return CompositeKey }

func (id CompositeID) String() string { return id.Parent.String() + "-" + id.Child.String() }

// Key is the closed set of identifier shapes.
type Key interface {
	ID | CompositeID
	Kind() KeyKind
}

// Record is an entity addressable by a key of type K.
type Record[K Key] interface {
	Key() K
}
