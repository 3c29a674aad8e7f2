// Package codec is a table-driven decoder and encoder for DER encoded ASN.1 structures.
//
// A Grammar describes one SEQUENCE type: an ordered list of fields, each with the tag it
// expects on the wire, whether it's optional, a Codec for its value, and an accessor which
// locates the field inside the golang struct.  Grammars nest: a field's Codec may be a leaf
// codec (Int32, GeneralString, OctetString, ...), another Grammar, a SequenceOf list, or a
// Choice.
//
// Decoding is incremental.  A Container is fed fragments of a PDU as they arrive, and
// reports StatePending until the outermost element is complete.  The Container keeps a
// stack of open constructed elements, each with the number of bytes it has left, so a
// child can never read past the end of its parent.
//
// Encoding takes two passes.  The first computes the length of every constructed element
// and records it in an encoding plan.  The second writes the elements, outermost tag first,
// using the plan for the length octets.  Nothing is cached on the values being encoded.
//
// Optional fields are pointers (nil means absent), or slices for optional SEQUENCE OF
// fields (nil means absent, empty means present with no elements).
//
// A field's context tag which wraps a zero-length primitive is treated as an absent field
// if the field is optional, and as ErrEmptyMandatoryValue otherwise.  Leaf types which
// permit empty values, like OCTET STRING, are exempt.
package codec
