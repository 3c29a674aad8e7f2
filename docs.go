// Package krb5 decodes and encodes the Kerberos v5 messages of RFC 4120, and the
// structures nested inside them, from and to DER.
//
// Each message type is a plain golang struct, with a grammar table describing its wire
// form.  Mandatory fields are values.  Optional fields are pointers, or slices for
// optional SEQUENCE OF fields, and are nil when absent.  Every type has Marshal and
// Unmarshal methods:
//
//	var ed krb5.EncryptedData
//	err := ed.Unmarshal(b)
//	...
//	b, err = ed.Marshal()
//
// Encoding is canonical: a value decoded from DER encodes back to exactly the same bytes.
//
// When the message type isn't known in advance, use DecodeMessage, which picks the
// grammar from the APPLICATION tag of the first octet.  A MessageDecoder does the same
// for input which arrives in fragments, e.g. from a stream:
//
//	d := krb5.NewMessageDecoder(codec.DefaultConfig())
//	for {
//		n, _ := conn.Read(buf)
//		state, err := d.Decode(buf[:n])
//		...
//	}
//
// Enumerated values (encryption types, name types, error codes, ...) are typed integers.
// Their names come from github.com/jcmturner/gokrb5/v8/iana.  Values which aren't in
// the registries still decode and encode unchanged, and print as UNKNOWN(n).
//
// # Errors
//
// All errors wrap one of the sentinels in package der, and can be classified with
// KindOf.  Decoding errors carry the byte offset and the grammar path at which decoding
// failed: see Details.
package krb5
