package dialect

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

const timestampLayout = "2006-01-02 15:04:05.999999"

// quoteValue renders a Go value as an inline SQL literal. Unsupported
// types are a programmer error and panic.
func quoteValue(v any, escape func(string) string, hexBytes func([]byte) string) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + escape(val) + "'"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.FormatInt(int64(val), 10)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		return "'" + val.UTC().Format(timestampLayout) + "'"
	case []byte:
		return hexBytes(val)
	case uuid.UUID:
		return "'" + val.String() + "'"
	case ulid.ULID:
		return "'" + val.String() + "'"
	case driver.Valuer:
		inner, err := val.Value()
		if err != nil {
			panic(fmt.Sprintf("relal: cannot quote %T: %v", v, err))
		}
		return quoteValue(inner, escape, hexBytes)
	default:
		panic(fmt.Sprintf("relal: unsupported literal type %T", v))
	}
}
