package redact

import "bytes"

// Filler is the byte written over each byte of a redacted token.
const Filler = '_'

// Blank returns a run of Filler bytes as long as token.
func Blank(token string) []byte {
	return bytes.Repeat([]byte{Filler}, len(token))
}

// Anonymize blanks token inside payload.
//
// The first chunk containing the token has every occurrence in that chunk
// replaced; later chunks are not inspected. The input payload is not
// modified. An empty token is a no-op and returns payload itself.
//
// replaced is the number of occurrences overwritten.
func Anonymize(payload Payload, token string) (out Payload, replaced int) {
	if token == "" {
		return payload, 0
	}

	tok := []byte(token)
	blank := Blank(token)

	for i, chunk := range payload {
		n := bytes.Count(chunk, tok)
		if n == 0 {
			continue
		}
		out = make(Payload, len(payload))
		copy(out, payload)
		out[i] = bytes.ReplaceAll(chunk, tok, blank)
		return out, n
	}
	return payload, 0
}
