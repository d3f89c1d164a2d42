package browser

import (
	"fmt"
	"io"
	"slices"

	"github.com/WangWilly/xBrowse/pkgs/model"
)

// QuotedFields are long free-text fields printed in quoted form.
var QuotedFields = []string{model.FieldContent, model.FieldRawDescription}

// PrintDetail writes every field of rec as "key: value".
func PrintDetail(w io.Writer, rec model.Record) error {
	for _, f := range rec.Fields() {
		value := model.FormatValue(f.Value)
		if slices.Contains(QuotedFields, f.Key) {
			value = model.QuoteValue(f.Value)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", f.Key, value); err != nil {
			return err
		}
	}
	return nil
}
