package zcl

import (
	"github.com/rs/zerolog/log"
)

// Cursor is a mutable little-endian byte cursor that Decode pops from the
// front of, so a caller can decode a sequence of heterogeneously-typed
// arguments against a single payload.
type Cursor struct {
	buf []byte
}

// NewCursor wraps buf for sequential decoding. The cursor does not copy buf.
func NewCursor(buf []byte) *Cursor { return &Cursor{buf: buf} }

// Remaining reports how many bytes are left to decode.
func (c *Cursor) Remaining() int { return len(c.buf) }

func (c *Cursor) pop(n int) ([]byte, bool) {
	if n > len(c.buf) {
		return nil, false
	}
	out := c.buf[:n]
	c.buf = c.buf[n:]
	return out, true
}

// Encode renders value as a little-endian byte sequence according to tag,
// enforcing each type's encodable range. Unknown tags fall back to the
// INT8U encoding and log a warning rather than failing outright, a
// forward-compatible default for type tags this codec doesn't recognize.
func Encode(tag DataType, value any) ([]byte, error) {
	switch tag {
	case Int8U, Enum8:
		u, ok := toUint64(value)
		if !ok || u > 0xFF {
			return nil, &RangeError{Type: tag, Value: value}
		}
		return []byte{byte(u)}, nil

	case Boolean:
		if _, isBool := value.(bool); !isBool {
			if i, ok := toInt64(value); ok && (i < 0 || i > 0xFF) {
				return nil, &RangeError{Type: tag, Value: value}
			}
		}
		if b, ok := toBool(value); ok {
			if b {
				return []byte{0x01}, nil
			}
			return []byte{0x00}, nil
		}
		u, ok := toUint64(value)
		if !ok || u > 0xFF {
			return nil, &RangeError{Type: tag, Value: value}
		}
		return []byte{byte(u)}, nil

	case Int8S:
		i, ok := toInt64(value)
		if !ok || i < -128 || i > 127 {
			return nil, &RangeError{Type: tag, Value: value}
		}
		return []byte{byte(int8(i))}, nil

	case Int16U, Enum16, Bitmap16:
		u, ok := toUint64(value)
		if !ok || u > 0xFFFF {
			return nil, &RangeError{Type: tag, Value: value}
		}
		return []byte{byte(u & 0xFF), byte(u >> 8)}, nil

	case Int16S:
		i, ok := toInt64(value)
		if !ok || i < -32768 || i > 32767 {
			return nil, &RangeError{Type: tag, Value: value}
		}
		u := uint16(int16(i))
		return []byte{byte(u & 0xFF), byte(u >> 8)}, nil

	case Int32U, UTCTime, IEEEAddress, Bitmap32:
		u, ok := toUint64(value)
		if !ok || u > 0xFFFFFFFF {
			return nil, &RangeError{Type: tag, Value: value}
		}
		return []byte{
			byte(u),
			byte(u >> 8),
			byte(u >> 16),
			byte(u >> 24),
		}, nil

	case Int32S:
		i, ok := toInt64(value)
		if !ok {
			return nil, &RangeError{Type: tag, Value: value}
		}
		u := uint32(int32(i))
		return []byte{
			byte(u),
			byte(u >> 8),
			byte(u >> 16),
			byte(u >> 24),
		}, nil

	case CharString:
		s, ok := value.(string)
		if !ok || len(s) > 255 {
			return nil, &RangeError{Type: tag, Value: value}
		}
		out := make([]byte, 0, 1+len(s))
		out = append(out, byte(len(s)))
		out = append(out, s...)
		return out, nil

	case OctetString:
		b, ok := toByteSlice(value)
		if !ok || len(b) > 255 {
			return nil, &RangeError{Type: tag, Value: value}
		}
		out := make([]byte, 0, 1+len(b))
		out = append(out, byte(len(b)))
		out = append(out, b...)
		return out, nil

	default:
		log.Warn().Str("type", string(tag)).Msg("unknown ZCL type, treating as INT8U")
		return Encode(Int8U, value)
	}
}

// Decode pops the encoding of tag off the front of cur and returns it as a
// plain Go value: bool for BOOLEAN, a signed integer for INT*S types, an
// unsigned integer for everything else unsigned, []byte for OCTET_STRING,
// string for CHAR_STRING.
func Decode(tag DataType, cur *Cursor) (any, error) {
	switch tag {
	case Int8U, Enum8:
		b, ok := cur.pop(1)
		if !ok {
			return nil, &RangeError{Type: tag, Value: "short payload"}
		}
		return uint64(b[0]), nil

	case Boolean:
		b, ok := cur.pop(1)
		if !ok {
			return nil, &RangeError{Type: tag, Value: "short payload"}
		}
		return b[0] != 0, nil

	case Int8S:
		b, ok := cur.pop(1)
		if !ok {
			return nil, &RangeError{Type: tag, Value: "short payload"}
		}
		return int64(int8(b[0])), nil

	case Int16U, Enum16, Bitmap16:
		b, ok := cur.pop(2)
		if !ok {
			return nil, &RangeError{Type: tag, Value: "short payload"}
		}
		return uint64(b[0]) | uint64(b[1])<<8, nil

	case Int16S:
		b, ok := cur.pop(2)
		if !ok {
			return nil, &RangeError{Type: tag, Value: "short payload"}
		}
		u := uint16(b[0]) | uint16(b[1])<<8
		return int64(int16(u)), nil

	case Int32U, UTCTime, IEEEAddress, Bitmap32:
		b, ok := cur.pop(4)
		if !ok {
			return nil, &RangeError{Type: tag, Value: "short payload"}
		}
		return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24, nil

	case Int32S:
		b, ok := cur.pop(4)
		if !ok {
			return nil, &RangeError{Type: tag, Value: "short payload"}
		}
		u := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		return int64(int32(u)), nil

	case CharString:
		lb, ok := cur.pop(1)
		if !ok {
			return nil, &RangeError{Type: tag, Value: "short payload"}
		}
		n := int(lb[0])
		sb, ok := cur.pop(n)
		if !ok {
			return nil, &RangeError{Type: tag, Value: "short payload"}
		}
		return string(sb), nil

	case OctetString:
		lb, ok := cur.pop(1)
		if !ok {
			return nil, &RangeError{Type: tag, Value: "short payload"}
		}
		n := int(lb[0])
		sb, ok := cur.pop(n)
		if !ok {
			return nil, &RangeError{Type: tag, Value: "short payload"}
		}
		out := make([]byte, n)
		copy(out, sb)
		return out, nil

	default:
		log.Warn().Str("type", string(tag)).Msg("unknown ZCL type, treating as INT8U")
		return Decode(Int8U, cur)
	}
}
