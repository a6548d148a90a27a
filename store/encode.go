package store

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/masqdata/masq/tab"
)

const (
	datasetFormat = 1

	nullValueTag    = 0
	boolValueTag    = 1
	int64ValueTag   = 2
	float64ValueTag = 3
	stringValueTag  = 4
)

func EncodeVarint(buf []byte, n uint64) []byte {
	for n >= 1<<7 {
		buf = append(buf, uint8(n&0x7f|0x80))
		n >>= 7
	}
	return append(buf, uint8(n))
}

func DecodeVarint(buf []byte) ([]byte, uint64, bool) {
	var idx int
	var n uint64
	for shift := uint(0); shift < 64; shift += 7 {
		if idx >= len(buf) {
			return nil, 0, false
		}
		b := uint64(buf[idx])
		idx += 1
		n |= (b & 0x7F) << shift
		if (b & 0x80) == 0 {
			return buf[idx:], n, true
		}
	}

	// The number is too large to represent in a 64-bit value.
	return nil, 0, false
}

func EncodeZigzag64(buf []byte, n int64) []byte {
	return EncodeVarint(buf, uint64((uint64(n)<<1)^uint64(n>>63)))
}

func DecodeZigzag64(buf []byte) ([]byte, int64, bool) {
	buf, n, ok := DecodeVarint(buf)
	if !ok {
		return nil, 0, false
	}
	return buf, int64((n >> 1) ^ uint64((int64(n&1)<<63)>>63)), true
}

func encodeUint64(buf []byte, u uint64) []byte {
	return append(buf, byte(u>>56), byte(u>>48), byte(u>>40), byte(u>>32),
		byte(u>>24), byte(u>>16), byte(u>>8), byte(u))
}

func encodeBytes(buf []byte, b []byte) []byte {
	buf = EncodeVarint(buf, uint64(len(b)))
	return append(buf, b...)
}

func decodeBytes(buf []byte) ([]byte, []byte, bool) {
	buf, u, ok := DecodeVarint(buf)
	if !ok || uint64(len(buf)) < u {
		return nil, nil, false
	}
	return buf[u:], buf[:u], true
}

func encodeValue(buf []byte, val tab.Value) []byte {
	if val == nil {
		return append(buf, nullValueTag)
	}
	switch val := val.(type) {
	case tab.BoolValue:
		buf = append(buf, boolValueTag)
		if val {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	case tab.Int64Value:
		buf = append(buf, int64ValueTag)
		buf = EncodeZigzag64(buf, int64(val))
	case tab.Float64Value:
		buf = append(buf, float64ValueTag)
		buf = encodeUint64(buf, math.Float64bits(float64(val)))
	case tab.StringValue:
		buf = append(buf, stringValueTag)
		buf = encodeBytes(buf, []byte(val))
	default:
		panic(fmt.Sprintf("store: unexpected type for tab.Value: %T: %v", val, val))
	}
	return buf
}

func decodeValue(buf []byte) ([]byte, tab.Value, bool) {
	if len(buf) < 1 {
		return nil, nil, false
	}
	tag := buf[0]
	buf = buf[1:]

	switch tag {
	case nullValueTag:
		return buf, nil, true
	case boolValueTag:
		if len(buf) < 1 {
			return nil, nil, false
		}
		return buf[1:], tab.BoolValue(buf[0] != 0), true
	case int64ValueTag:
		buf, n, ok := DecodeZigzag64(buf)
		if !ok {
			return nil, nil, false
		}
		return buf, tab.Int64Value(n), true
	case float64ValueTag:
		if len(buf) < 8 {
			return nil, nil, false
		}
		u := binary.BigEndian.Uint64(buf)
		return buf[8:], tab.Float64Value(math.Float64frombits(u)), true
	case stringValueTag:
		buf, b, ok := decodeBytes(buf)
		if !ok {
			return nil, nil, false
		}
		return buf, tab.StringValue(b), true
	}

	return nil, nil, false
}

// EncodeDataset serializes a dataset column by column: a format byte,
// the column count, and for each column its name, declared type, row
// count, and tagged values.
func EncodeDataset(ds *tab.Dataset) []byte {
	buf := []byte{datasetFormat}
	buf = EncodeVarint(buf, uint64(ds.NumColumns()))
	for _, col := range ds.Columns() {
		buf = encodeBytes(buf, []byte(col.Name))
		buf = append(buf, byte(col.Type))
		buf = EncodeVarint(buf, uint64(len(col.Values)))
		for _, val := range col.Values {
			buf = encodeValue(buf, val)
		}
	}
	return buf
}

func DecodeDataset(buf []byte) (*tab.Dataset, error) {
	if len(buf) < 1 || buf[0] != datasetFormat {
		return nil, fmt.Errorf("store: unknown dataset format: %v", buf)
	}
	buf = buf[1:]

	buf, ncols, ok := DecodeVarint(buf)
	if !ok {
		return nil, fmt.Errorf("store: unable to decode dataset column count")
	}

	cols := make([]tab.Column, 0, ncols)
	for cdx := uint64(0); cdx < ncols; cdx += 1 {
		var nam []byte
		buf, nam, ok = decodeBytes(buf)
		if !ok {
			return nil, fmt.Errorf("store: unable to decode column name")
		}
		if len(buf) < 1 {
			return nil, fmt.Errorf("store: unable to decode column %s", nam)
		}
		dt := tab.DataType(buf[0])
		if dt < tab.BooleanType || dt > tab.StringType {
			return nil, fmt.Errorf("store: column %s: unknown data type: %d", nam, buf[0])
		}
		buf = buf[1:]

		var nrows uint64
		buf, nrows, ok = DecodeVarint(buf)
		if !ok {
			return nil, fmt.Errorf("store: unable to decode column %s", nam)
		}

		vals := make([]tab.Value, 0, nrows)
		for rdx := uint64(0); rdx < nrows; rdx += 1 {
			var val tab.Value
			buf, val, ok = decodeValue(buf)
			if !ok {
				return nil, fmt.Errorf("store: unable to decode column %s", nam)
			}
			vals = append(vals, val)
		}

		cols = append(cols, tab.Column{Name: string(nam), Type: dt, Values: vals})
	}

	return tab.NewDataset(cols...)
}
