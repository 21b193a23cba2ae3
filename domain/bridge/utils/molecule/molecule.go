// Package molecule encodes and decodes the molecule layouts used by cell
// data, scripts and transaction inputs.
package molecule

import (
	"bytes"

	"github.com/cellbridge/bridged/util/binaryserializer"
	"github.com/pkg/errors"
)

// ErrMalformed is returned when data does not follow the expected layout.
var ErrMalformed = errors.New("malformed molecule data")

const numberSize = 4

func writeNumber(buf *bytes.Buffer, n int) {
	err := binaryserializer.PutUint32(buf, uint32(n))
	if err != nil {
		panic(errors.Wrap(err, "writing into a bytes.Buffer never fails"))
	}
}

// SerializeBytes encodes b as a fixvec of bytes: its length followed by
// its content.
func SerializeBytes(b []byte) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, numberSize+len(b)))
	writeNumber(buf, len(b))
	buf.Write(b)
	return buf.Bytes()
}

// DeserializeBytes decodes a fixvec of bytes that spans all of data.
func DeserializeBytes(data []byte) ([]byte, error) {
	length, err := binaryserializer.Uint32At(data, 0)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "bytes header: %s", err)
	}
	if uint64(len(data)-numberSize) != uint64(length) {
		return nil, errors.Wrapf(ErrMalformed, "bytes of declared length %d span %d bytes",
			length, len(data)-numberSize)
	}
	content := make([]byte, length)
	copy(content, data[numberSize:])
	return content, nil
}

// SerializeTable encodes already serialized fields as a table: the total
// size, one offset per field and the fields themselves.
func SerializeTable(fields ...[]byte) []byte {
	headerSize := numberSize * (1 + len(fields))
	totalSize := headerSize
	for _, field := range fields {
		totalSize += len(field)
	}
	buf := bytes.NewBuffer(make([]byte, 0, totalSize))
	writeNumber(buf, totalSize)
	offset := headerSize
	for _, field := range fields {
		writeNumber(buf, offset)
		offset += len(field)
	}
	for _, field := range fields {
		buf.Write(field)
	}
	return buf.Bytes()
}

// SerializeBytesVec encodes items as a dynvec of bytes.
func SerializeBytesVec(items [][]byte) []byte {
	fields := make([][]byte, len(items))
	for i, item := range items {
		fields[i] = SerializeBytes(item)
	}
	return SerializeTable(fields...)
}

// DeserializeTable splits data into its fields. A table written by a newer
// schema may carry extra trailing fields; they are accepted only when
// compatible is set.
func DeserializeTable(data []byte, fieldCount int, compatible bool) ([][]byte, error) {
	fields, err := splitDynamic(data)
	if err != nil {
		return nil, err
	}
	if len(fields) < fieldCount || (len(fields) > fieldCount && !compatible) {
		return nil, errors.Wrapf(ErrMalformed, "table has %d fields, expected %d", len(fields), fieldCount)
	}
	return fields[:fieldCount], nil
}

// DeserializeBytesVec decodes a dynvec of bytes that spans all of data.
func DeserializeBytesVec(data []byte) ([][]byte, error) {
	fields, err := splitDynamic(data)
	if err != nil {
		return nil, err
	}
	items := make([][]byte, len(fields))
	for i, field := range fields {
		items[i], err = DeserializeBytes(field)
		if err != nil {
			return nil, errors.Wrapf(err, "item %d", i)
		}
	}
	return items, nil
}

// splitDynamic splits the shared layout of tables and dynvecs.
func splitDynamic(data []byte) ([][]byte, error) {
	totalSize, err := binaryserializer.Uint32At(data, 0)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "total size: %s", err)
	}
	if uint64(totalSize) != uint64(len(data)) {
		return nil, errors.Wrapf(ErrMalformed, "declared total size %d, actual %d", totalSize, len(data))
	}
	if totalSize == numberSize {
		return [][]byte{}, nil
	}
	firstOffset, err := binaryserializer.Uint32At(data, numberSize)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "first offset: %s", err)
	}
	if firstOffset%numberSize != 0 || firstOffset < 2*numberSize || firstOffset > totalSize {
		return nil, errors.Wrapf(ErrMalformed, "invalid first offset %d", firstOffset)
	}
	count := int(firstOffset/numberSize) - 1
	offsets := make([]int, count+1)
	for i := 0; i < count; i++ {
		offset, err := binaryserializer.Uint32At(data, numberSize*(1+i))
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "offset %d: %s", i, err)
		}
		offsets[i] = int(offset)
	}
	offsets[count] = int(totalSize)

	fields := make([][]byte, count)
	for i := 0; i < count; i++ {
		if offsets[i] > offsets[i+1] {
			return nil, errors.Wrapf(ErrMalformed, "offset %d (%d) is past offset %d (%d)",
				i, offsets[i], i+1, offsets[i+1])
		}
		fields[i] = data[offsets[i]:offsets[i+1]]
	}
	return fields, nil
}
