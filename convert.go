// convert.go: validating boundary adapters around the raw byte-slice API
//
// SPDX-License-Identifier: MIT
package sinter

import (
	"bytes"
	"unicode/utf8"
)

// InternBytes interns s, same as Intern(string(s)) but without the
// intermediate string copy on the miss path's hash/lookup steps. It
// returns an error if s is not valid UTF-8, since Handle.String is
// assumed by every caller to return a valid string.
func InternBytes(s []byte) (Handle, error) {
	return globalInterner.InternBytes(s)
}

// InternBytes is the method form of the package-level InternBytes,
// against this Interner.
func (in *Interner) InternBytes(s []byte) (Handle, error) {
	if !utf8.Valid(s) {
		return Handle{}, NewErrInvalidUTF8(len(s))
	}
	return in.intern(s), nil
}

// MustIntern is like Intern but panics with an invalid-UTF-8 error (see
// IsInvalidUTF8) if s is not valid UTF-8. It is for call sites holding
// content known to be valid (e.g. a string literal) that would rather
// crash than handle the error InternBytes returns.
func MustIntern(s string) Handle {
	if !utf8.ValidString(s) {
		panic(NewErrInvalidUTF8(len(s)))
	}
	return globalInterner.Intern(s)
}

// InternCBytes interns a NUL-terminated byte slice such as one obtained
// from a C API, given here without its own trailing NUL counted in the
// result's length. The slice's last byte must be 0x00, and it must
// contain no other NUL byte; otherwise InternCBytes returns an error. The
// interned content is valid UTF-8 as required by every other handle,
// so s (minus its terminator) must be valid UTF-8 too.
func InternCBytes(s []byte) (Handle, error) {
	return globalInterner.InternCBytes(s)
}

// InternCBytes is the method form of the package-level InternCBytes,
// against this Interner.
func (in *Interner) InternCBytes(s []byte) (Handle, error) {
	if len(s) == 0 || s[len(s)-1] != 0 {
		return Handle{}, NewErrMissingNUL(len(s))
	}
	body := s[:len(s)-1]
	if i := bytes.IndexByte(body, 0); i >= 0 {
		return Handle{}, NewErrEmbeddedNUL(i)
	}
	if !utf8.Valid(body) {
		return Handle{}, NewErrInvalidUTF8(len(body))
	}
	return in.intern(body), nil
}
