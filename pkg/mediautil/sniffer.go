package mediautil

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// Kind identifies a container format.
type Kind int

const (
	KindUnknown Kind = iota
	KindMPEGTS
	KindMP4
)

func (k Kind) String() string {
	switch k {
	case KindMPEGTS:
		return "mpeg-ts"
	case KindMP4:
		return "mp4"
	default:
		return "unknown"
	}
}

const (
	tsPacketSize   = 188
	m2tsPacketSize = 192
	tsSyncByte     = 0x47

	// HeaderSize is enough to see two consecutive M2TS packets.
	HeaderSize = m2tsPacketSize + 5
)

var ftyp = []byte("ftyp")

// DetectHeader inspects the start of a file. MPEG-TS needs the sync byte at
// the start of two consecutive packets; MP4 needs an ftyp box first.
func DetectHeader(header []byte) (Kind, error) {
	if len(header) < 8 {
		return KindUnknown, errors.New("header too short")
	}

	if bytes.Equal(header[4:8], ftyp) {
		return KindMP4, nil
	}
	if syncAt(header, 0, tsPacketSize) || syncAt(header, 4, m2tsPacketSize) {
		return KindMPEGTS, nil
	}

	return KindUnknown, nil
}

func syncAt(header []byte, offset, stride int) bool {
	next := offset + stride
	if len(header) <= next {
		return false
	}
	return header[offset] == tsSyncByte && header[next] == tsSyncByte
}

// SniffFile reads the header of the file at path to determine its kind.
func SniffFile(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	return SniffReader(f)
}

// SniffReader reads up to HeaderSize bytes from r. Inputs shorter than that
// are still inspected as long as the minimal header is present.
func SniffReader(r io.Reader) (Kind, error) {
	header := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return KindUnknown, err
	}

	return DetectHeader(header[:n])
}
