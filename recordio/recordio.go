package recordio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
)

// Version is the snapshot layout written by WriteHeader.
const Version uint8 = 1

// MaxRecordSize bounds a single record so a corrupt length prefix cannot
// trigger a huge allocation.
const MaxRecordSize = 64 << 20

var (
	Uint64Size = int64(binary.Size(uint64(0)))
	Int64Size  = int64(binary.Size(int64(0)))
	// MagicBytes Magic bytes to identify valid heap snapshots (LHP).
	MagicBytes = []byte{0x4C, 0x48, 0x50}
	// HeaderSize is the number of bytes written by WriteHeader.
	HeaderSize = int64(len(MagicBytes)) + 1 + Int64Size

	ErrInvalidMagicBytes  = errors.New("invalid magic bytes - not a valid heap snapshot")
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	ErrTruncated          = errors.New("snapshot is truncated")
	ErrRecordTooLarge     = errors.New("record exceeds maximum size")
)

// Header describes the records that follow it.
type Header struct {
	Version uint8
	Count   int64
}

// BinaryWriter handles writing binary data with error handling.
type BinaryWriter struct {
	w io.Writer
}

func NewBinaryWriter(w io.Writer) BinaryWriter {
	return BinaryWriter{w: w}
}

func (bw BinaryWriter) WriteUint8(v uint8) (int64, error) {
	if err := binary.Write(bw.w, binary.LittleEndian, v); err != nil {
		return 0, err
	}
	return 1, nil
}

func (bw BinaryWriter) WriteInt64(i int64) (int64, error) {
	if err := binary.Write(bw.w, binary.LittleEndian, i); err != nil {
		return 0, err
	}
	return Int64Size, nil
}

func (bw BinaryWriter) WriteBytes(b []byte) (int64, error) {
	// Write bytes length (uint64)
	if err := binary.Write(bw.w, binary.LittleEndian, uint64(len(b))); err != nil {
		return 0, fmt.Errorf("error writing bytes length: %w", err)
	}

	// Write bytes content
	n, err := bw.w.Write(b)
	if err != nil {
		return Uint64Size, fmt.Errorf("error writing bytes content: %w", err)
	}

	// Return total bytes written (length field + bytes content)
	return Uint64Size + int64(n), nil
}

// BinaryReader handles reading binary data with error handling.
type BinaryReader struct {
	r io.Reader
}

func NewBinaryReader(r io.Reader) BinaryReader {
	return BinaryReader{r: r}
}

func (br BinaryReader) ReadUint8() (uint8, error) {
	var v uint8
	err := binary.Read(br.r, binary.LittleEndian, &v)
	return v, err
}

func (br BinaryReader) ReadInt64() (int64, error) {
	var value int64
	err := binary.Read(br.r, binary.LittleEndian, &value)
	return value, err
}

func (br BinaryReader) ReadBytes() ([]byte, error) {
	var length uint64
	if err := binary.Read(br.r, binary.LittleEndian, &length); err != nil {
		return nil, fmt.Errorf("error reading bytes length: %w", err)
	}
	if length > MaxRecordSize {
		return nil, ErrRecordTooLarge
	}

	b := make([]byte, length)
	if _, err := io.ReadFull(br.r, b); err != nil {
		return nil, fmt.Errorf("error reading bytes content: %w", err)
	}
	return b, nil
}

// WriteHeader writes the magic bytes, the layout version and the number of
// records that will follow.
func WriteHeader(w io.Writer, count int64) (int64, error) {
	var totalBytes int64

	mn, err := w.Write(MagicBytes)
	if err != nil {
		return int64(mn), fmt.Errorf("failed to write magic bytes: %w", err)
	}
	totalBytes += int64(mn)

	bw := NewBinaryWriter(w)

	n, err := bw.WriteUint8(Version)
	if err != nil {
		return totalBytes, fmt.Errorf("error writing version: %w", err)
	}
	totalBytes += n

	n, err = bw.WriteInt64(count)
	if err != nil {
		return totalBytes, fmt.Errorf("error writing record count: %w", err)
	}
	totalBytes += n

	return totalBytes, nil
}

// ReadHeader reads and validates a header written by WriteHeader.
func ReadHeader(r io.Reader) (Header, error) {
	magicBytes := make([]byte, len(MagicBytes))
	if _, err := io.ReadFull(r, magicBytes); err != nil {
		return Header{}, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if !bytes.Equal(magicBytes, MagicBytes) {
		return Header{}, ErrInvalidMagicBytes
	}

	br := NewBinaryReader(r)

	version, err := br.ReadUint8()
	if err != nil {
		return Header{}, fmt.Errorf("error reading version: %w", err)
	}
	if version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	count, err := br.ReadInt64()
	if err != nil {
		return Header{}, fmt.Errorf("error reading record count: %w", err)
	}
	if count < 0 {
		return Header{}, fmt.Errorf("invalid record count %d", count)
	}

	return Header{Version: version, Count: count}, nil
}

// WriteRecord writes a single length-prefixed record.
func WriteRecord(w io.Writer, data []byte) (int64, error) {
	n, err := NewBinaryWriter(w).WriteBytes(data)
	if err != nil {
		return n, fmt.Errorf("error writing record: %w", err)
	}
	return n, nil
}

// ReadRecord reads a single record written by WriteRecord.
func ReadRecord(r io.Reader) ([]byte, error) {
	data, err := NewBinaryReader(r).ReadBytes()
	if err != nil {
		return nil, fmt.Errorf("error reading record: %w", err)
	}
	return data, nil
}

// Seq reads a header and then yields its records. A stream that ends early
// yields ErrTruncated; any error ends the sequence.
func Seq(r io.Reader) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		h, err := ReadHeader(r)
		if err != nil {
			yield(nil, err)
			return
		}

		for i := int64(0); i < h.Count; i++ {
			data, err := ReadRecord(r)
			if err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
					err = fmt.Errorf("%w: read %d of %d records", ErrTruncated, i, h.Count)
				}
				yield(nil, err)
				return
			}
			if !yield(data, nil) {
				return
			}
		}
	}
}

// Size calculates the total size in bytes that a record will occupy when written.
func Size(data []byte) int64 {
	return Uint64Size + int64(len(data))
}
