package cadence

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/vmihailenco/msgpack/v4"
)

var errMissingArgument = fmt.Errorf("missing workflow argument")

// MsgPackDataConverter encodes workflow and activity payloads
// (model bindings, feature histories, forecasts) with msgpack.
// Arguments are written back to back in a single buffer.
type MsgPackDataConverter struct {
	compact bool
}

func NewMsgPackDataConverter() *MsgPackDataConverter {
	return &MsgPackDataConverter{compact: true}
}

func (c *MsgPackDataConverter) ToData(values ...interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf).UseCompactEncoding(c.compact)

	for i, v := range values {
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode argument %d (%v): %w", i, reflect.TypeOf(v), err)
		}
	}
	return buf.Bytes(), nil
}

// FromData decodes into valuePtrs in order. Trailing encoded values
// without a matching pointer are ignored.
func (c *MsgPackDataConverter) FromData(input []byte, valuePtrs ...interface{}) error {
	dec := msgpack.NewDecoder(bytes.NewReader(input))

	for i, ptr := range valuePtrs {
		if err := dec.Decode(ptr); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: %d (%v)", errMissingArgument, i, reflect.TypeOf(ptr))
			}
			return fmt.Errorf("decode argument %d (%v): %w", i, reflect.TypeOf(ptr), err)
		}
	}
	return nil
}
