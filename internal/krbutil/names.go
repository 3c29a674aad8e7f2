package krbutil

import (
	"strings"
)

// NormalizeName folds the spellings of a registry name found in RFCs, krb5.conf files and
// gokrb5's constant names to one key: upper case, with runs of '-', '_', '.' and spaces
// collapsed to a single '_'.  "aes256-cts-hmac-sha1-96" and "AES256_CTS_HMAC_SHA1_96"
// both become "AES256_CTS_HMAC_SHA1_96".
func NormalizeName(s string) string {
	var sb strings.Builder
	sep := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z':
			r -= 'a' - 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			sep = sb.Len() > 0
			continue
		}
		if sep {
			sb.WriteByte('_')
			sep = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
