package warehouse

import (
	"github.com/rs/zerolog"

	"dwetl/internal/chrono"
	"dwetl/internal/schema"
	"dwetl/internal/structlit"
	"dwetl/internal/transformer"
	"dwetl/internal/transformer/builtin"
	"dwetl/pkg/records"
)

// Products builds the dim_produto row set: one row per distinct product id,
// display fields title-cased, codes upper-cased, measures numerically typed,
// and barcode/created_at lifted out of the embedded meta structure. The
// non-analytical fields (description, images, thumbnail) never survive the
// final column selection.
func Products(docs []records.Record, log zerolog.Logger) []records.Record {
	docs = lowerKeys(docs)

	dd := &builtin.DeDup{Keys: []string{"id"}}
	docs = dd.Apply(docs)
	log.Info().Int("dropped", dd.Dropped()).Msg("duplicate products removed")

	transformer.Chain{
		builtin.Rename{Mapping: map[string]string{
			"id":    "product_id",
			"title": "product_name",
		}},
		builtin.NormalizeText{
			Fields: []string{"product_name", "category", "brand"},
			Casing: builtin.CasingTitle,
		},
		builtin.NormalizeText{Fields: []string{"sku"}, Casing: builtin.CasingUpper},
		builtin.CoerceNumeric{Fields: []string{"price", "rating", "stock"}},
	}.Apply(docs)

	for _, r := range docs {
		r["product_id"] = builtin.ToInt(r["product_id"])

		meta, kind := structlit.Map(r["meta"])
		if kind == structlit.KindMalformed {
			log.Warn().
				Interface("product_id", r["product_id"]).
				Msg("meta is not a decodable structure; using empty")
		}
		r["barcode"] = builtin.CleanText(scalarOrNil(meta["barcode"]), builtin.CasingNone)

		created, out := chrono.ResolveDate(meta["createdAt"])
		if out == chrono.Resolved {
			r["created_at"] = created
		} else {
			r["created_at"] = nil
			if out == chrono.Invalid {
				log.Warn().
					Interface("product_id", r["product_id"]).
					Interface("value", meta["createdAt"]).
					Msg("unparseable meta.createdAt")
			}
		}
	}

	builtin.Select{Columns: schema.DimProduto.Columns()}.Apply(docs)
	return docs
}
