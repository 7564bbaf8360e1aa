package functions

import (
	"time"

	"github.com/araddon/dateparse"

	"github.com/sambeau/sorrel/pkg/sorrel/value"
)

// Dates builds the date namespace table. Date values travel as RFC 3339
// text; parse accepts most common formats and normalizes.
func Dates() *Table {
	t := NewTable()

	t.Register("parse", 1, func(args []value.Value) (value.Value, error) {
		d, err := dateparse.ParseAny(value.ToText(args[0]))
		if err != nil {
			return nil, argError("date:parse", err.Error())
		}
		return &value.String{Value: d.Format(time.RFC3339)}, nil
	})

	t.Register("now", 0, func(args []value.Value) (value.Value, error) {
		return &value.String{Value: time.Now().Format(time.RFC3339)}, nil
	})

	t.Register("year", 1, datePart(func(d time.Time) int64 { return int64(d.Year()) }))
	t.Register("month", 1, datePart(func(d time.Time) int64 { return int64(d.Month()) }))
	t.Register("day", 1, datePart(func(d time.Time) int64 { return int64(d.Day()) }))
	t.Register("weekday", 1, func(args []value.Value) (value.Value, error) {
		d, err := dateparse.ParseAny(value.ToText(args[0]))
		if err != nil {
			return nil, argError("date:weekday", err.Error())
		}
		return &value.String{Value: d.Weekday().String()}, nil
	})

	t.Register("format", 2, func(args []value.Value) (value.Value, error) {
		d, err := dateparse.ParseAny(value.ToText(args[0]))
		if err != nil {
			return nil, argError("date:format", err.Error())
		}
		return &value.String{Value: d.Format(value.ToText(args[1]))}, nil
	})

	return t
}

func datePart(part func(time.Time) int64) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		d, err := dateparse.ParseAny(value.ToText(args[0]))
		if err != nil {
			return nil, argError("date", err.Error())
		}
		return &value.Integer{Value: part(d)}, nil
	}
}
