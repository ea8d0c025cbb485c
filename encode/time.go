package encode

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Wire-Network/sdk-core-sub000/encio"
	"github.com/Wire-Network/sdk-core-sub000/integer"
)

const (
	timeLayoutMillis  = "2006-01-02T15:04:05.000"
	timeLayoutSeconds = "2006-01-02T15:04:05"

	// block timestamps count half seconds since 2000-01-01T00:00:00Z.
	blockTimestampEpochMs    = 946684800000
	blockTimestampIntervalMs = 500
)

// parseTime parses the zoneless ISO-8601 form the chain uses. A trailing Z and fractional seconds are accepted.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSuffix(s, "Z")
	t, err := time.ParseInLocation(timeLayoutSeconds, s, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(encio.ErrBadType, "%q is not a time", s)
	}
	return t, nil
}

// timeFromObject returns v in units since the unix epoch.
// Strings and time.Time are converted with unit, numbers are taken as already in units.
func timeFromObject(v interface{}, unit time.Duration, t *integer.Type, name string) (int64, error) {
	switch tv := v.(type) {
	case time.Time:
		return tv.UnixNano() / int64(unit), nil
	case string:
		if _, err := json.Number(tv).Int64(); err != nil {
			parsed, err := parseTime(tv)
			if err != nil {
				return 0, err
			}
			return parsed.UnixNano() / int64(unit), nil
		}
	}

	i, err := t.From(v)
	if err != nil {
		return 0, errors.Wrapf(err, "converting %T to %v", v, name)
	}
	return i.Int64(), nil
}

// TimePoint is microseconds since the unix epoch.
type TimePoint int64

// Time returns tp as a time.Time in UTC.
func (tp TimePoint) Time() time.Time {
	return time.Unix(0, int64(tp)*int64(time.Microsecond)).UTC()
}

// String returns tp with millisecond precision, the way the chain prints it.
func (tp TimePoint) String() string { return tp.Time().Format(timeLayoutMillis) }

// TimePointSec is seconds since the unix epoch.
type TimePointSec uint32

// Time returns tp as a time.Time in UTC.
func (tp TimePointSec) Time() time.Time { return time.Unix(int64(tp), 0).UTC() }

func (tp TimePointSec) String() string { return tp.Time().Format(timeLayoutSeconds) }

// BlockTimestamp is the number of half second block slots since 2000-01-01.
type BlockTimestamp uint32

// Time returns bt as a time.Time in UTC.
func (bt BlockTimestamp) Time() time.Time {
	ms := int64(bt)*blockTimestampIntervalMs + blockTimestampEpochMs
	return time.Unix(0, ms*int64(time.Millisecond)).UTC()
}

func (bt BlockTimestamp) String() string { return bt.Time().Format(timeLayoutMillis) }

// BlockTimestampFromTime returns the slot t falls in.
func BlockTimestampFromTime(t time.Time) BlockTimestamp {
	ms := t.UnixNano() / int64(time.Millisecond)
	return BlockTimestamp((ms - blockTimestampEpochMs) / blockTimestampIntervalMs)
}

// TimePointCodec is the codec for time_point, a little-endian int64 of microseconds.
type TimePointCodec struct{}

// ABIName implements Codec.
func (TimePointCodec) ABIName() string { return "time_point" }

// GoType implements Native.
func (TimePointCodec) GoType() reflect.Type { return reflect.TypeOf(TimePoint(0)) }

// Default implements Codec.
func (TimePointCodec) Default() interface{} { return TimePoint(0) }

// DecodeBinary implements Codec.
func (TimePointCodec) DecodeBinary(r *encio.Reader) (interface{}, error) {
	n, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	return TimePoint(int64(n)), nil
}

// EncodeBinary implements Codec.
func (e TimePointCodec) EncodeBinary(v interface{}, w *encio.Writer) error {
	tp, err := e.FromObject(v)
	if err != nil {
		return err
	}
	w.WriteUint64(uint64(tp.(TimePoint)))
	return nil
}

// FromObject implements Codec.
func (TimePointCodec) FromObject(v interface{}) (interface{}, error) {
	if tp, ok := v.(TimePoint); ok {
		return tp, nil
	}
	n, err := timeFromObject(v, time.Microsecond, integer.Int64, "time_point")
	if err != nil {
		return nil, err
	}
	return TimePoint(n), nil
}

// ToObject implements Codec.
func (e TimePointCodec) ToObject(v interface{}) (interface{}, error) {
	tp, err := e.FromObject(v)
	if err != nil {
		return nil, err
	}
	return tp.(TimePoint).String(), nil
}

// TimePointSecCodec is the codec for time_point_sec, a little-endian uint32 of seconds.
type TimePointSecCodec struct{}

// ABIName implements Codec.
func (TimePointSecCodec) ABIName() string { return "time_point_sec" }

// GoType implements Native.
func (TimePointSecCodec) GoType() reflect.Type { return reflect.TypeOf(TimePointSec(0)) }

// Default implements Codec.
func (TimePointSecCodec) Default() interface{} { return TimePointSec(0) }

// DecodeBinary implements Codec.
func (TimePointSecCodec) DecodeBinary(r *encio.Reader) (interface{}, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return TimePointSec(n), nil
}

// EncodeBinary implements Codec.
func (e TimePointSecCodec) EncodeBinary(v interface{}, w *encio.Writer) error {
	tp, err := e.FromObject(v)
	if err != nil {
		return err
	}
	w.WriteUint32(uint32(tp.(TimePointSec)))
	return nil
}

// FromObject implements Codec.
func (TimePointSecCodec) FromObject(v interface{}) (interface{}, error) {
	if tp, ok := v.(TimePointSec); ok {
		return tp, nil
	}
	n, err := timeFromObject(v, time.Second, integer.UInt32, "time_point_sec")
	if err != nil {
		return nil, err
	}
	if _, err := integer.UInt32.From(n); err != nil {
		return nil, errors.Wrap(err, "time_point_sec")
	}
	return TimePointSec(n), nil
}

// ToObject implements Codec.
func (e TimePointSecCodec) ToObject(v interface{}) (interface{}, error) {
	tp, err := e.FromObject(v)
	if err != nil {
		return nil, err
	}
	return tp.(TimePointSec).String(), nil
}

// BlockTimestampCodec is the codec for block_timestamp_type, a little-endian uint32 slot number.
type BlockTimestampCodec struct{}

// ABIName implements Codec.
func (BlockTimestampCodec) ABIName() string { return "block_timestamp_type" }

// GoType implements Native.
func (BlockTimestampCodec) GoType() reflect.Type { return reflect.TypeOf(BlockTimestamp(0)) }

// Default implements Codec.
func (BlockTimestampCodec) Default() interface{} { return BlockTimestamp(0) }

// DecodeBinary implements Codec.
func (BlockTimestampCodec) DecodeBinary(r *encio.Reader) (interface{}, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return BlockTimestamp(n), nil
}

// EncodeBinary implements Codec.
func (e BlockTimestampCodec) EncodeBinary(v interface{}, w *encio.Writer) error {
	bt, err := e.FromObject(v)
	if err != nil {
		return err
	}
	w.WriteUint32(uint32(bt.(BlockTimestamp)))
	return nil
}

// FromObject implements Codec.
// Numbers are slot numbers; strings and time.Time are rounded down to their slot.
func (BlockTimestampCodec) FromObject(v interface{}) (interface{}, error) {
	switch bt := v.(type) {
	case BlockTimestamp:
		return bt, nil
	case time.Time:
		return BlockTimestampFromTime(bt), nil
	case string:
		if _, err := json.Number(bt).Int64(); err != nil {
			t, err := parseTime(bt)
			if err != nil {
				return nil, err
			}
			return BlockTimestampFromTime(t), nil
		}
	}

	i, err := integer.UInt32.From(v)
	if err != nil {
		return nil, errors.Wrap(err, "block_timestamp_type")
	}
	return BlockTimestamp(i.Uint64()), nil
}

// ToObject implements Codec.
func (e BlockTimestampCodec) ToObject(v interface{}) (interface{}, error) {
	bt, err := e.FromObject(v)
	if err != nil {
		return nil, err
	}
	return bt.(BlockTimestamp).String(), nil
}
