// Package der reads and writes the restricted subset of ASN.1 DER used by Kerberos v5
// and by LDAP control values.
//
// Only definite lengths are accepted.  The short form covers lengths 0 through 127, and the
// long form carries at most 4 length octets.  Lengths above MaxLength are refused, so a header
// plus its value always fits in an int.
// The indefinite form (0x80) and non-minimal long forms are rejected with ErrLengthMismatch.
//
// The reader functions never block and never panic on short input: when a header or value
// has not fully arrived yet they return ErrBufferUnderrun, which callers treat as
// "need more data" rather than as a failure.
//
// The DER value types map to golang types as follows:
//
//	| ASN.1 type      | golang type   |
//	| --------------- | ------------- |
//	| INTEGER         | int64         |
//	| ENUMERATED      | int64         |
//	| BOOLEAN         | bool          |
//	| OCTET STRING    | []byte        |
//	| GeneralString   | string        |
//	| GeneralizedTime | time.Time     |
//	| BIT STRING      | der.BitString |
//
// The TLV type is a []byte view of one encoded element.  It knows how to print itself
// in an indented, human readable form, which is mostly useful for debugging and tests.
package der
