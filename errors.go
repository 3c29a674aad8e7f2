package krb5

import (
	"fmt"

	"github.com/ansel1/merry"
	"github.com/gemalto/krb5-go/der"
)

func Is(err error, originals ...error) bool {
	return merry.Is(err, originals...)
}

func Details(err error) string {
	return merry.Details(err)
}

// KindOf classifies err, e.g. der.KindMissingMandatoryField.
func KindOf(err error) der.Kind {
	return der.KindOf(err)
}

type errKey int

const (
	errorKeyApplicationTag errKey = iota
)

func init() {
	merry.RegisterDetail("Application Tag", errorKeyApplicationTag)
}

// WithApplicationTag records the APPLICATION tag number of the message which failed.
func WithApplicationTag(err error, tag int) error {
	return merry.WithValue(err, errorKeyApplicationTag, tag)
}

// GetApplicationTag returns the tag recorded by WithApplicationTag, or -1.
func GetApplicationTag(err error) int {
	v := merry.Value(err, errorKeyApplicationTag)
	switch t := v.(type) {
	case nil:
		return -1
	case int:
		return t
	default:
		panic(fmt.Sprintf("err application tag attribute's value was wrong type, expected int, got %T", v))
	}
}
