// Package flac extracts track metadata from FLAC files. Only the metadata
// section of the stream is read (STREAMINFO and VORBIS_COMMENT blocks);
// audio frames are never touched.
//
// Format reference: https://xiph.org/flac/format.html
package flac

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNotFlac is returned when the file does not start with the FLAC magic.
var ErrNotFlac = errors.New("not a flac file")

// errCommentOverflow is returned when a VORBIS_COMMENT length field claims
// more bytes than the enclosing block has left.
var errCommentOverflow = errors.New("vorbis comment length exceeds block size")

// Metadata block types.
const (
	blockStreamInfo    = 0
	blockPadding       = 1
	blockApplication   = 2
	blockSeekTable     = 3
	blockVorbisComment = 4
	blockCuesheet      = 5
	blockPicture       = 6
)

var flacMagic = [4]byte{'f', 'L', 'a', 'C'}

// TrackInfo holds the metadata describing one track.
type TrackInfo struct {
	Name        string
	Genre       string
	Artist      string
	TrackNumber string
	Album       string
	Date        string
	Duration    string

	Rate          uint32
	ChannelCount  uint8
	BitsPerSample uint8
}

// Reader extracts TrackInfo from FLAC files.
type Reader struct{}

// metadataHeader is the 4-byte header preceding every metadata block.
type metadataHeader struct {
	isLast    bool
	blockType uint8
	length    uint32
}

// streamInfo carries the STREAMINFO fields the player cares about.
type streamInfo struct {
	rate          uint32
	channelCount  uint8
	bitsPerSample uint8
	totalSamples  uint64
}

// IsFlacFile reports whether r starts with the FLAC stream marker. It
// consumes the four magic bytes.
func IsFlacFile(r io.Reader) bool {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false
	}
	return buf == flacMagic
}

// ReadInformation opens the file at path and extracts its track metadata.
// Unknown or irrelevant metadata blocks are skipped by their declared length.
func (Reader) ReadInformation(path string) (*TrackInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	r := bufio.NewReader(f)
	if !IsFlacFile(r) {
		return nil, fmt.Errorf("%q: %w", path, ErrNotFlac)
	}

	info := &TrackInfo{}
	for {
		header, err := readMetadataHeader(r)
		if err != nil {
			return nil, fmt.Errorf("reading metadata header in %q: %w", path, err)
		}

		switch header.blockType {
		case blockStreamInfo:
			si, err := readStreamInfo(r)
			if err != nil {
				return nil, fmt.Errorf("reading streaminfo in %q: %w", path, err)
			}
			info.Rate = si.rate
			info.ChannelCount = si.channelCount
			info.BitsPerSample = si.bitsPerSample
			info.Duration = formatDuration(si.totalSamples, si.rate)

		case blockVorbisComment:
			comments, err := readVorbisComments(r, header.length)
			if err != nil {
				return nil, fmt.Errorf("reading vorbis comments in %q: %w", path, err)
			}
			info.applyComments(comments)

		default:
			// PADDING, APPLICATION, SEEKTABLE, CUESHEET, PICTURE and any
			// future block types carry nothing the player surfaces.
			if err := skipBlock(r, header.length); err != nil {
				return nil, fmt.Errorf("skipping block type %d in %q: %w", header.blockType, path, err)
			}
		}

		if header.isLast {
			break
		}
	}

	return info, nil
}

// readMetadataHeader decodes the block header: one byte holding the is-last
// flag (bit 7) and the block type (low 7 bits), followed by a 24-bit
// big-endian block length.
func readMetadataHeader(r io.Reader) (metadataHeader, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return metadataHeader{}, err
	}
	return metadataHeader{
		isLast:    buf[0]&0x80 != 0,
		blockType: buf[0] & 0x7F,
		length:    uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]),
	}, nil
}

// readStreamInfo decodes the fixed 34-byte STREAMINFO block. The sample rate
// (20 bits), channel count (3 bits, stored minus one), bits per sample
// (5 bits, stored minus one), and total sample count (36 bits) share the
// 8 bytes following the block and frame size fields.
func readStreamInfo(r io.Reader) (streamInfo, error) {
	var buf [34]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return streamInfo{}, err
	}

	packed := binary.BigEndian.Uint64(buf[10:18])
	return streamInfo{
		rate:          uint32(packed >> 44),
		channelCount:  uint8((packed>>41)&0x7) + 1,
		bitsPerSample: uint8((packed>>36)&0x1F) + 1,
		totalSamples:  packed & 0xFFFFFFFFF,
	}, nil
}

// readVorbisComments decodes the VORBIS_COMMENT block: a length-prefixed
// vendor string followed by a length-prefixed list of "KEY=value" comments.
// Unlike the rest of FLAC, the lengths here are little-endian. Every length
// read from the block is validated against blockLen before any allocation, so
// a corrupt file cannot request a multi-gigabyte buffer.
// Reference: https://www.xiph.org/vorbis/doc/v-comment.html
func readVorbisComments(r io.Reader, blockLen uint32) ([]string, error) {
	remaining := blockLen

	readLen := func() (uint32, error) {
		if remaining < 4 {
			return 0, errCommentOverflow
		}
		v, err := readUint32LE(r)
		if err != nil {
			return 0, err
		}
		remaining -= 4
		return v, nil
	}

	vendorLen, err := readLen()
	if err != nil {
		return nil, err
	}
	if vendorLen > remaining {
		return nil, errCommentOverflow
	}
	if err := skipBlock(r, vendorLen); err != nil {
		return nil, err
	}
	remaining -= vendorLen

	count, err := readLen()
	if err != nil {
		return nil, err
	}
	// Each comment costs at least its own 4-byte length prefix.
	if count > remaining/4 {
		return nil, errCommentOverflow
	}

	comments := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		commentLen, err := readLen()
		if err != nil {
			return nil, err
		}
		if commentLen > remaining {
			return nil, errCommentOverflow
		}
		raw := make([]byte, commentLen)
		if _, err := io.ReadFull(r, raw); err != nil {
			return nil, err
		}
		remaining -= commentLen
		comments = append(comments, string(raw))
	}
	return comments, nil
}

// applyComments maps the well-known vorbis comment tags onto TrackInfo.
// YEAR is not standard but shows up in the wild as a stand-in for DATE.
func (t *TrackInfo) applyComments(comments []string) {
	for _, comment := range comments {
		key, value, ok := strings.Cut(comment, "=")
		if !ok {
			continue
		}
		switch strings.ToUpper(key) {
		case "TITLE":
			t.Name = value
		case "ARTIST":
			t.Artist = value
		case "TRACKNUMBER":
			t.TrackNumber = value
		case "ALBUM":
			t.Album = value
		case "DATE", "YEAR":
			t.Date = value
		case "GENRE":
			t.Genre = value
		}
	}
}

func readUint32LE(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func skipBlock(r io.Reader, length uint32) error {
	_, err := io.CopyN(io.Discard, r, int64(length))
	return err
}

// formatDuration renders total samples at the given rate as "m:ss".
func formatDuration(totalSamples uint64, rate uint32) string {
	if rate == 0 || totalSamples == 0 {
		return ""
	}
	seconds := totalSamples / uint64(rate)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
