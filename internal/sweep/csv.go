package sweep

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"wirelab/pkg/acnet"
)

// WriteCSV writes the sweep as CSV: a header of acnet.Keys, then one row per
// sample frequency.
func WriteCSV(w io.Writer, resp *Response) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(acnet.Keys); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	row := make([]string, len(acnet.Keys))
	for _, res := range resp.Results {
		for i, key := range acnet.Keys {
			v, _ := res.Get(key)
			row[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
