package codec

import (
	"testing"

	"github.com/gemalto/krb5-go/der"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sortKey struct {
	Attr    string
	Rule    *string
	Reverse bool
}

var sortKeyGrammar = NewGrammar("SortKey",
	Component("attributeType", OctetText, func(k *sortKey) *string { return &k.Attr }),
	OptionalImplicit(0, "orderingRule", OctetText, func(k *sortKey) **string { return &k.Rule }),
	DefaultImplicit(1, "reverseOrder", Boolean, func(k *sortKey) *bool { return &k.Reverse }, false),
)

type warning struct {
	Time  *int32
	Grace *int32
}

type policy struct {
	Warning *warning
	Error   *int32
}

var warningChoice = NewChoice("warning",
	OptionalImplicit(0, "timeBeforeExpiration", Int32, func(w *warning) **int32 { return &w.Time }),
	OptionalImplicit(1, "graceAuthNsRemaining", Int32, func(w *warning) **int32 { return &w.Grace }),
)

var policyGrammar = NewGrammar("PasswordPolicyResponseValue",
	Optional(0, "warning", Codec[warning](warningChoice), func(p *policy) **warning { return &p.Warning }),
	OptionalImplicit(1, "error", Enumerated[int32]("ENUMERATED"), func(p *policy) **int32 { return &p.Error }),
)

func strp(s string) *string {
	return &s
}

func TestImplicitAndDefault(t *testing.T) {
	tests := []struct {
		hex string
		exp sortKey
	}{
		{"30 04 04 02 63 6E", sortKey{Attr: "cn"}},
		{"30 07 04 02 63 6E 81 01 FF", sortKey{Attr: "cn", Reverse: true}},
		{"30 07 04 02 63 6E 80 01 72", sortKey{Attr: "cn", Rule: strp("r")}},
		{"30 0A 04 02 63 6E 80 01 72 81 01 FF", sortKey{Attr: "cn", Rule: strp("r"), Reverse: true}},
		{"30 02 04 00", sortKey{}},
	}
	for _, tc := range tests {
		t.Run(tc.hex, func(t *testing.T) {
			b := der.Hex2bytes(tc.hex)
			v, err := Unmarshal[sortKey](sortKeyGrammar, b)
			require.NoError(t, err, der.Details(err))
			assert.Equal(t, tc.exp, *v)

			out, err := Marshal(sortKeyGrammar, v)
			require.NoError(t, err)
			assert.Equal(t, b, out)
		})
	}

	// a DEFAULT value on the wire decodes, but isn't written back
	v, err := Unmarshal[sortKey](sortKeyGrammar, der.Hex2bytes("30 07 04 02 63 6E 81 01 00"))
	require.NoError(t, err)
	assert.False(t, v.Reverse)
	out, err := Marshal(sortKeyGrammar, v)
	require.NoError(t, err)
	assert.Equal(t, der.Hex2bytes("30 04 04 02 63 6E"), out)

	// implicit tags keep the primitive form of the type they replace
	_, err = Unmarshal[sortKey](sortKeyGrammar, der.Hex2bytes("30 07 04 02 63 6E A1 01 FF"))
	assert.Equal(t, der.KindTagMismatch, der.KindOf(err))

	_, err = Unmarshal[sortKey](sortKeyGrammar, der.Hex2bytes("30 03 81 01 FF"))
	assert.Equal(t, der.KindTagMismatch, der.KindOf(err))
}

func TestChoice(t *testing.T) {
	tests := []struct {
		hex string
		exp policy
	}{
		{"30 08 A0 03 81 01 03 81 01 02", policy{Warning: &warning{Grace: int32p(3)}, Error: int32p(2)}},
		{"30 06 A0 04 80 02 01 2C", policy{Warning: &warning{Time: int32p(300)}}},
		{"30 03 81 01 00", policy{Error: int32p(0)}},
		{"30 00", policy{}},
	}
	for _, tc := range tests {
		t.Run(tc.hex, func(t *testing.T) {
			b := der.Hex2bytes(tc.hex)
			v, err := Unmarshal[policy](policyGrammar, b)
			require.NoError(t, err, der.Details(err))
			assert.Equal(t, tc.exp, *v)

			out, err := Marshal(policyGrammar, v)
			require.NoError(t, err)
			assert.Equal(t, b, out)
		})
	}

	_, err := Unmarshal[policy](policyGrammar, der.Hex2bytes("30 05 A0 03 82 01 03"))
	assert.Equal(t, der.KindTagMismatch, der.KindOf(err))

	_, err = Marshal(policyGrammar, &policy{Warning: &warning{}})
	assert.Equal(t, der.KindMissingMandatoryField, der.KindOf(err))

	_, err = Marshal(policyGrammar, &policy{Warning: &warning{Time: int32p(1), Grace: int32p(1)}})
	assert.Equal(t, der.KindInvalidValue, der.KindOf(err))

	assert.Panics(t, func() {
		OptionalImplicit(0, "warning", Codec[warning](warningChoice), func(p *policy) **warning { return &p.Warning })
	})
}
