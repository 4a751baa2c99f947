package page

import (
	"mime"
	"regexp"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

var metaCharsetRegex = regexp.MustCompile(`(?i)<meta[^>]+charset\s*=\s*["']?([\w.:-]+)`)

// metaSniffLen is how far into the page a <meta charset> is searched for
const metaSniffLen = 2048

// Decode converts raw page bytes to a UTF-8 string.
// Valid UTF-8 is returned unchanged. Otherwise the charset declared in the
// Content-Type header or a <meta> tag is used, falling back to EUC-KR.
func Decode(raw []byte, contentType string) string {
	if utf8.Valid(raw) {
		return string(raw)
	}

	if enc := lookupEncoding(raw, contentType); enc != nil {
		if decoded, _, err := transform.Bytes(enc.NewDecoder(), raw); err == nil {
			return string(decoded)
		}
	}

	decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), raw)
	if err != nil {
		// Corrupted input, keep the original bytes
		return string(raw)
	}
	return string(decoded)
}

func lookupEncoding(raw []byte, contentType string) encoding.Encoding {
	if contentType != "" {
		if _, params, err := mime.ParseMediaType(contentType); err == nil {
			if enc, err := htmlindex.Get(params["charset"]); err == nil {
				return enc
			}
		}
	}

	head := raw
	if len(head) > metaSniffLen {
		head = head[:metaSniffLen]
	}
	if m := metaCharsetRegex.FindSubmatch(head); len(m) > 1 {
		if enc, err := htmlindex.Get(string(m[1])); err == nil {
			return enc
		}
	}
	return nil
}
