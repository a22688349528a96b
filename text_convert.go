package gui

import (
	"bytes"
	"unicode/utf8"
)

// cstrlen returns the length of the NUL-terminated string in b, or len(b)
// when there is no terminator.
func cstrlen(b []byte) int {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return i
	}
	return len(b)
}

// textStrFromUtf8 decodes the NUL-terminated UTF-8 string in src into dst.
// Malformed sequences decode to utf8.RuneError.
func textStrFromUtf8(dst []rune, src []byte) []rune {
	dst = dst[:0]
	src = src[:cstrlen(src)]
	for len(src) > 0 {
		r, n := utf8.DecodeRune(src)
		dst = append(dst, r)
		src = src[n:]
	}
	return dst
}

// textStrToUtf8 encodes runes into dst, NUL-terminating when room remains.
// It returns the number of bytes written, not counting the terminator.
// Encoding stops before a rune that does not fit.
func textStrToUtf8(dst []byte, src []rune) int {
	n := 0
	for _, r := range src {
		l := utf8.RuneLen(r)
		if l < 0 {
			r, l = utf8.RuneError, utf8.RuneLen(utf8.RuneError)
		}
		if n+l > len(dst) {
			break
		}
		utf8.EncodeRune(dst[n:], r)
		n += l
	}
	if n < len(dst) {
		dst[n] = 0
	}
	return n
}

// textCountUtf8BytesFromStr returns the UTF-8 length of runes.
func textCountUtf8BytesFromStr(src []rune) int {
	n := 0
	for _, r := range src {
		l := utf8.RuneLen(r)
		if l < 0 {
			l = utf8.RuneLen(utf8.RuneError)
		}
		n += l
	}
	return n
}

// textCountCharsFromUtf8 counts the runes in the NUL-terminated string in b.
func textCountCharsFromUtf8(b []byte) int {
	return utf8.RuneCount(b[:cstrlen(b)])
}

// utf8Truncate returns the largest n <= max such that b[:n] does not end in
// the middle of a multi-byte sequence.
func utf8Truncate(b []byte, max int) int {
	if max >= len(b) {
		return len(b)
	}
	if max <= 0 {
		return 0
	}
	n := max
	for n > 0 && !utf8.RuneStart(b[n]) {
		n--
	}
	return n
}
