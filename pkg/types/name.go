package types

import "golang.org/x/text/unicode/norm"

// NormalizeName canonicalizes a qualified name or lifetime identifier to
// Unicode NFC before it is used as a map key or compared for equality, so
// two differently-composed encodings of the same identifier (e.g. an
// accented letter written as a single code point vs. base+combining mark)
// are never treated as distinct names.
func NormalizeName(s string) Name {
	return Name(norm.NFC.String(s))
}
