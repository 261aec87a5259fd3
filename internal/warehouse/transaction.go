package warehouse

import (
	"github.com/rs/zerolog"

	"dwetl/internal/chrono"
	"dwetl/internal/schema"
	"dwetl/internal/structlit"
	"dwetl/internal/transformer/builtin"
	"dwetl/pkg/records"
)

// measureColumns are the per-line measures of fact_transacao, coerced
// independently so one bad value never discards a row.
var measureColumns = []string{
	"quantity", "unit_price", "total_price", "discount_pct", "final_price",
}

// Transactions builds the fact_transacao row set by expanding each cart's
// embedded product list into one row per line. The sale-level date is
// resolved once per cart and carried onto every expanded line; a cart whose
// date cannot be resolved still contributes its rows with a null
// transaction_date, and the failure is logged as an advisory warning.
func Transactions(docs []records.Record, log zerolog.Logger) []records.Record {
	docs = lowerKeys(docs)

	dd := &builtin.DeDup{Keys: []string{"id"}}
	docs = dd.Apply(docs)
	log.Info().Int("dropped", dd.Dropped()).Msg("duplicate carts removed")

	out := make([]records.Record, 0, len(docs))
	for _, cart := range docs {
		saleID := builtin.ToInt(cart["id"])
		userID := builtin.ToInt(cart["userid"])

		lines, kind := structlit.List(cart["products"])
		if kind == structlit.KindMalformed {
			log.Warn().
				Interface("sale_id", saleID).
				Msg("products is not a decodable list; cart expands to zero lines")
		}

		rawDate, ok := cart["transaction_date"]
		if !ok {
			rawDate = cart["date"]
		}
		var txDate any
		resolved, outc := chrono.Resolve(rawDate)
		switch outc {
		case chrono.Resolved:
			txDate = resolved
		case chrono.Invalid:
			log.Warn().
				Interface("sale_id", saleID).
				Interface("value", rawDate).
				Msg("unresolvable transaction date; fact rows keep a null date")
		}

		for _, l := range lines {
			line, ok := l.(map[string]any)
			if !ok {
				log.Warn().
					Interface("sale_id", saleID).
					Interface("entry", l).
					Msg("product list entry is not a structure; skipped")
				continue
			}
			out = append(out, records.Record{
				"sale_id":          saleID,
				"user_id":          userID,
				"product_id":       builtin.ToInt(line["id"]),
				"transaction_date": txDate,
				"quantity":         measure(line, "quantity"),
				"unit_price":       measure(line, "price"),
				"total_price":      measure(line, "total"),
				"discount_pct":     measure(line, "discountPercentage"),
				"final_price":      measure(line, "discountedTotal"),
			})
		}
	}

	builtin.CoerceNumeric{Fields: measureColumns}.Apply(out)
	builtin.Select{Columns: schema.FactTransacao.Columns()}.Apply(out)
	return out
}

// measure reads a line measure, defaulting absent keys to zero before the
// numeric coercion pass. A key that is present but null stays null: the line
// recorded the measure as unknown, which is not the same as zero.
func measure(line map[string]any, key string) any {
	v, ok := line[key]
	if !ok {
		return 0
	}
	return v
}
