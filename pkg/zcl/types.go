// Package zcl implements the ZigBee Cluster Library schema/codec core: a
// little-endian type codec (C1), an XML schema loader (C2), a command
// invocation builder (C3), and a small validator set (C4).
package zcl

// DataType is a ZCL primitive type tag. The tag↔code table is authoritative
// and hard-coded here because the XML schema files never carry it.
type DataType string

// The closed set of ZCL type tags this codec understands. Names match
// the ZigBee Cluster Library's own type-tag vocabulary.
const (
	NoData           DataType = "NO_DATA"
	Data8            DataType = "DATA8"
	Data16           DataType = "DATA16"
	Data24           DataType = "DATA24"
	Data32           DataType = "DATA32"
	Data40           DataType = "DATA40"
	Data48           DataType = "DATA48"
	Data56           DataType = "DATA56"
	Data64           DataType = "DATA64"
	Boolean          DataType = "BOOLEAN"
	Bitmap8          DataType = "BITMAP8"
	Bitmap16         DataType = "BITMAP16"
	Bitmap24         DataType = "BITMAP24"
	Bitmap32         DataType = "BITMAP32"
	Bitmap40         DataType = "BITMAP40"
	Bitmap48         DataType = "BITMAP48"
	Bitmap56         DataType = "BITMAP56"
	Bitmap64         DataType = "BITMAP64"
	Int8U            DataType = "INT8U"
	Int16U           DataType = "INT16U"
	Int24U           DataType = "INT24U"
	Int32U           DataType = "INT32U"
	Int40U           DataType = "INT40U"
	Int48U           DataType = "INT48U"
	Int56U           DataType = "INT56U"
	Int64U           DataType = "INT64U"
	Int8S            DataType = "INT8S"
	Int16S           DataType = "INT16S"
	Int24S           DataType = "INT24S"
	Int32S           DataType = "INT32S"
	Int40S           DataType = "INT40S"
	Int48S           DataType = "INT48S"
	Int56S           DataType = "INT56S"
	Int64S           DataType = "INT64S"
	Enum8            DataType = "ENUM8"
	Enum16           DataType = "ENUM16"
	FloatSemi        DataType = "FLOAT_SEMI"
	FloatSingle      DataType = "FLOAT_SINGLE"
	FloatDouble      DataType = "FLOAT_DOUBLE"
	OctetString      DataType = "OCTET_STRING"
	CharString       DataType = "CHAR_STRING"
	LongOctetString  DataType = "LONG_OCTET_STRING"
	LongCharString   DataType = "LONG_CHAR_STRING"
	Array            DataType = "ARRAY"
	Struct           DataType = "STRUCT"
	Set              DataType = "SET"
	Bag              DataType = "BAG"
	TimeOfDay        DataType = "TIME_OF_DAY"
	Date             DataType = "DATE"
	UTCTime          DataType = "UTC_TIME"
	ClusterID        DataType = "CLUSTER_ID"
	AttributeID      DataType = "ATTRIBUTE_ID"
	BacnetOID        DataType = "BACNET_OID"
	IEEEAddress      DataType = "IEEE_ADDRESS"
	SecurityKey      DataType = "SECURITY_KEY"
	UnknownDataType  DataType = "UNKNOWN"
)

// typeCodes is the authoritative tag→byte table.
var typeCodes = map[DataType]byte{
	NoData:          0x00,
	Data8:           0x08,
	Data16:          0x09,
	Data24:          0x0A,
	Data32:          0x0B,
	Data40:          0x0C,
	Data48:          0x0D,
	Data56:          0x0E,
	Data64:          0x0F,
	Boolean:         0x10,
	Bitmap8:         0x18,
	Bitmap16:        0x19,
	Bitmap24:        0x1A,
	Bitmap32:        0x1B,
	Bitmap40:        0x1C,
	Bitmap48:        0x1D,
	Bitmap56:        0x1E,
	Bitmap64:        0x1F,
	Int8U:           0x20,
	Int16U:          0x21,
	Int24U:          0x22,
	Int32U:          0x23,
	Int40U:          0x24,
	Int48U:          0x25,
	Int56U:          0x26,
	Int64U:          0x27,
	Int8S:           0x28,
	Int16S:          0x29,
	Int24S:          0x2A,
	Int32S:          0x2B,
	Int40S:          0x2C,
	Int48S:          0x2D,
	Int56S:          0x2E,
	Int64S:          0x2F,
	Enum8:           0x30,
	Enum16:          0x31,
	FloatSemi:       0x38,
	FloatSingle:     0x39,
	FloatDouble:     0x3A,
	OctetString:     0x41,
	CharString:      0x42,
	LongOctetString: 0x43,
	LongCharString:  0x44,
	Array:           0x48,
	Struct:          0x4C,
	Set:             0x50,
	Bag:             0x51,
	TimeOfDay:       0xE0,
	Date:            0xE1,
	UTCTime:         0xE2,
	ClusterID:       0xE8,
	AttributeID:     0xE9,
	BacnetOID:       0xEA,
	IEEEAddress:     0xF0,
	SecurityKey:     0xF1,
	UnknownDataType: 0xFF,
}

// codeTypes is the inverse of typeCodes, built once at init.
var codeTypes = make(map[byte]DataType, len(typeCodes))

func init() {
	for tag, code := range typeCodes {
		codeTypes[code] = tag
	}
}

// TypeCode returns the one-byte wire code for tag. Unknown tags map to
// UnknownDataType's code (0xFF), a forward-compatible fallback for tags
// this table doesn't carry.
func TypeCode(tag DataType) byte {
	if code, ok := typeCodes[tag]; ok {
		return code
	}
	return typeCodes[UnknownDataType]
}

// TypeFromCode returns the DataType tag bound to a wire code, or
// UnknownDataType if code isn't in the authoritative table.
func TypeFromCode(code byte) DataType {
	if tag, ok := codeTypes[code]; ok {
		return tag
	}
	return UnknownDataType
}

// FixedWidth reports the encoded byte width of tag, and whether tag has a
// fixed width at all (false only for the length-prefixed string types;
// any type without a listed width reports 1, the INT8U width).
func FixedWidth(tag DataType) (width int, ok bool) {
	switch tag {
	case Int8U, Enum8, Boolean, Int8S, Bitmap8, Data8:
		return 1, true
	case Int16U, Enum16, Bitmap16, Int16S, Data16:
		return 2, true
	case Int32U, UTCTime, IEEEAddress, Bitmap32, Int32S, ClusterID, AttributeID, Data32:
		return 4, true
	case OctetString, CharString, LongOctetString, LongCharString:
		return 0, false
	default:
		// Unknown/unsupported-width types fall back to the INT8U width,
		// matching the codec's INT8U-fallback behaviour for unknown tags.
		return 1, true
	}
}
