// Package encoding turns imported files of unknown charset into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffLen = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader returns a reader yielding r's content as UTF-8 without a BOM.
// UTF-16 is recognised by its BOM; other non-UTF-8 input is identified by
// chardet and decoded, defaulting to Windows-1252.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(head, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	dec := decoderFor(head)
	if dec == nil {
		return br, nil
	}

	return transform.NewReader(br, dec), nil
}

// decoderFor picks a decoder for content starting with head, or nil when the
// content is already UTF-8.
func decoderFor(head []byte) *xenc.Decoder {
	switch {
	case bytes.HasPrefix(head, bomUTF16LE):
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
	case bytes.HasPrefix(head, bomUTF16BE):
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	case validUTF8Prefix(head):
		return nil
	}

	result, err := chardet.NewTextDetector().DetectBest(head)
	if err == nil {
		switch result.Charset {
		case "UTF-8":
			return nil
		case "ISO-8859-9":
			return charmap.ISO8859_9.NewDecoder()
		}
	}

	return charmap.Windows1252.NewDecoder()
}

// validUTF8Prefix is utf8.Valid that tolerates a rune cut at the end of the sniffed window.
func validUTF8Prefix(b []byte) bool {
	for i := 0; i < utf8.UTFMax && len(b) > 0; i++ {
		if utf8.Valid(b) {
			return true
		}

		if len(b) < sniffLen {
			return false
		}

		b = b[:len(b)-1]
	}

	return utf8.Valid(b)
}
