package netbios

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/khmm12/hostscan/internal/ports"
)

// RFC 1002 node status request/response.
const (
	headerLen     = 12
	encodedLen    = 32
	typeNBSTAT    = 0x0021
	classIN       = 0x0001
	nameEntryLen  = 18
	nameLen       = 15
	groupNameFlag = 0x8000
	responseFlag  = 0x8000
)

var errMalformed = errors.New("malformed node status response")

// encodeNodeStatusRequest builds a wildcard ("*") node status query.
func encodeNodeStatusRequest(id uint16) []byte {
	b := make([]byte, 0, headerLen+1+encodedLen+1+4)

	b = binary.BigEndian.AppendUint16(b, id)
	b = binary.BigEndian.AppendUint16(b, 0) // flags: query
	b = binary.BigEndian.AppendUint16(b, 1) // qdcount
	b = binary.BigEndian.AppendUint16(b, 0)
	b = binary.BigEndian.AppendUint16(b, 0)
	b = binary.BigEndian.AppendUint16(b, 0)

	b = append(b, encodedLen)
	b = append(b, encodeName("*")...)
	b = append(b, 0)

	b = binary.BigEndian.AppendUint16(b, typeNBSTAT)
	b = binary.BigEndian.AppendUint16(b, classIN)

	return b
}

// encodeName applies first-level encoding to a name padded with NUL bytes.
func encodeName(name string) []byte {
	var raw [16]byte
	copy(raw[:], name)

	out := make([]byte, 0, encodedLen)
	for _, c := range raw {
		out = append(out, 'A'+(c>>4), 'A'+(c&0x0f))
	}

	return out
}

// decodeNodeStatusResponse returns the node name table of a response to the
// request with the given id.
func decodeNodeStatusResponse(b []byte, id uint16) ([]ports.NetBIOSName, error) {
	if len(b) < headerLen {
		return nil, fmt.Errorf("%w: short header", errMalformed)
	}

	if binary.BigEndian.Uint16(b[0:2]) != id {
		return nil, fmt.Errorf("%w: transaction id mismatch", errMalformed)
	}

	if binary.BigEndian.Uint16(b[2:4])&responseFlag == 0 {
		return nil, fmt.Errorf("%w: not a response", errMalformed)
	}

	if binary.BigEndian.Uint16(b[6:8]) == 0 {
		return nil, fmt.Errorf("%w: no answer", errMalformed)
	}

	off, err := skipName(b, headerLen)
	if err != nil {
		return nil, err
	}

	// type, class, ttl, rdlength
	if len(b) < off+10 {
		return nil, fmt.Errorf("%w: short resource record", errMalformed)
	}

	if binary.BigEndian.Uint16(b[off:off+2]) != typeNBSTAT {
		return nil, fmt.Errorf("%w: unexpected record type", errMalformed)
	}

	rdlen := int(binary.BigEndian.Uint16(b[off+8 : off+10]))
	off += 10

	if len(b) < off+rdlen || rdlen < 1 {
		return nil, fmt.Errorf("%w: short rdata", errMalformed)
	}

	rdata := b[off : off+rdlen]
	count := int(rdata[0])

	if len(rdata) < 1+count*nameEntryLen {
		return nil, fmt.Errorf("%w: truncated name table", errMalformed)
	}

	names := make([]ports.NetBIOSName, 0, count)
	for i := range count {
		entry := rdata[1+i*nameEntryLen : 1+(i+1)*nameEntryLen]
		flags := binary.BigEndian.Uint16(entry[16:18])

		names = append(names, ports.NetBIOSName{
			Name:   strings.TrimRight(string(entry[:nameLen]), " \x00"),
			Suffix: entry[nameLen],
			Group:  flags&groupNameFlag != 0,
		})
	}

	return names, nil
}

func skipName(b []byte, off int) (int, error) {
	for {
		if off >= len(b) {
			return 0, fmt.Errorf("%w: name out of range", errMalformed)
		}

		l := int(b[off])

		switch {
		case l == 0:
			return off + 1, nil
		case l&0xc0 == 0xc0:
			return off + 2, nil
		default:
			off += 1 + l
		}
	}
}
