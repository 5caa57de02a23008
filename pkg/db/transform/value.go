package transform

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/chainpulse/chainpulse/pkg/db/models/analytics"
	"github.com/jackc/pgx/v5/pgtype"
)

// TimeLayout is ISO-8601 in UTC with millisecond precision, e.g. 2024-05-01T13:00:00.000Z.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// inexactFloater is satisfied by arbitrary-precision decimals such as shopspring/decimal.
type inexactFloater interface {
	InexactFloat64() float64
}

// Value converts a value decoded by the driver into a JSON-representable primitive.
//
// Timestamps become ISO-8601 strings, 64-bit and big integers and anything that
// can report itself as a float64 become float64. Large integers and decimals lose
// precision in the process; dashboard consumers read these as plain JS numbers.
// Non-finite floats become nil since JSON has no representation for them.
func Value(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		return FormatTime(x)
	case *time.Time:
		if x == nil {
			return nil
		}
		return FormatTime(*x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	case int:
		return float64(x)
	case uint:
		return float64(x)
	case *big.Int:
		if x == nil {
			return nil
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return finite(f)
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case [16]byte:
		return formatUUID(x)
	case inexactFloater:
		return finite(x.InexactFloat64())
	case pgtype.Float64Valuer:
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return finite(f.Float64)
	}
	return v
}

// Float returns v as a float64 after Value conversion; NULL and non-numeric values are 0.
func Float(v any) float64 {
	switch x := Value(v).(type) {
	case float64:
		return x
	case int32:
		return float64(x)
	case int16:
		return float64(x)
	case int8:
		return float64(x)
	case uint32:
		return float64(x)
	case uint16:
		return float64(x)
	case uint8:
		return float64(x)
	}
	return 0
}

// Row pairs column names with decoded values and converts each value.
func Row(columns []string, values []any) analytics.Row {
	row := make(analytics.Row, len(columns))
	for i, col := range columns {
		if i < len(values) {
			row[col] = Value(values[i])
		} else {
			row[col] = nil
		}
	}
	return row
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func finite(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

func formatUUID(u [16]byte) string {
	return fmt.Sprintf("%x-%x-%x-%x-%x", u[0:4], u[4:6], u[6:8], u[8:10], u[10:16])
}
