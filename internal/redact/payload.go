package redact

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
)

// Payload is a file's content split into '\n'-terminated chunks. Each chunk
// keeps its terminator, so joining the chunks restores the original bytes.
type Payload [][]byte

// ReadPayload reads r to EOF and splits it into chunks.
func ReadPayload(r io.Reader) (Payload, error) {
	br := bufio.NewReader(r)
	var p Payload
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			p = append(p, line)
		}
		if errors.Is(err, io.EOF) {
			return p, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// ReadPayloadFile reads the file at path into a Payload.
func ReadPayloadFile(path string) (Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPayload(f)
}

// Bytes joins the chunks back into one byte slice.
func (p Payload) Bytes() []byte {
	return bytes.Join(p, nil)
}

// Len returns the total number of bytes across all chunks.
func (p Payload) Len() int {
	n := 0
	for _, c := range p {
		n += len(c)
	}
	return n
}
