package warehouse

import (
	"strings"

	"github.com/rs/zerolog"

	"dwetl/internal/chrono"
	"dwetl/internal/schema"
	"dwetl/internal/structlit"
	"dwetl/internal/transformer"
	"dwetl/internal/transformer/builtin"
	"dwetl/pkg/records"
)

// sensitiveColumns are scrubbed from user documents before any further
// processing sees them. The final column selection is the backstop.
var sensitiveColumns = []string{
	"password", "cpf", "cnpj", "bank", "company", "crypto",
	"cardnumber", "cardexpire", "cardsymbol",
}

// Users builds the dim_usuario row set: one row per distinct user id, a
// derived display name, canonical email, bounded age, constrained gender,
// and location lifted out of the embedded address structure. Sensitive
// fields are removed entirely.
func Users(docs []records.Record, log zerolog.Logger) []records.Record {
	docs = lowerKeys(docs)

	dd := &builtin.DeDup{Keys: []string{"id"}}
	docs = dd.Apply(docs)
	log.Info().Int("dropped", dd.Dropped()).Msg("duplicate users removed")

	transformer.Chain{
		builtin.Drop{Columns: sensitiveColumns},
		builtin.NormalizeText{
			Fields: []string{"firstname", "lastname", "maidenname"},
			Casing: builtin.CasingTitle,
		},
		builtin.NormalizeText{Fields: []string{"email"}, Casing: builtin.CasingLower},
		builtin.CoerceNumeric{Fields: []string{"age"}},
		builtin.BoundRange{Field: "age", Min: 0, Max: 120},
		builtin.EnumDomain{
			Field:    "gender",
			Allowed:  []string{"male", "female"},
			Fallback: "unknown",
		},
	}.Apply(docs)

	for _, r := range docs {
		r["user_id"] = builtin.ToInt(r["id"])
		r["name"] = deriveName(r)

		rawBirth := r["birthdate"]
		birth, out := chrono.ResolveDate(rawBirth)
		if out == chrono.Resolved {
			r["birthdate"] = birth
		} else {
			r["birthdate"] = nil
			if out == chrono.Invalid {
				log.Warn().
					Interface("user_id", r["user_id"]).
					Interface("value", rawBirth).
					Msg("unparseable birthdate")
			}
		}

		addr, kind := structlit.Map(r["address"])
		if kind == structlit.KindMalformed {
			log.Warn().
				Interface("user_id", r["user_id"]).
				Msg("address is not a decodable structure; using empty")
		}
		r["city"] = builtin.CleanText(scalarOrNil(addr["city"]), builtin.CasingNone)
		r["state"] = builtin.CleanText(scalarOrNil(addr["state"]), builtin.CasingNone)
		r["country"] = builtin.CleanText(scalarOrNil(addr["country"]), builtin.CasingNone)
	}

	builtin.Select{Columns: schema.DimUsuario.Columns()}.Apply(docs)
	return docs
}

// deriveName joins first name with the maiden name when present, otherwise
// the last name, skipping empty parts. Name parts are already title-cased
// and sentinel-scrubbed by the chain above.
func deriveName(r records.Record) any {
	parts := make([]string, 0, 2)
	if s, ok := r["firstname"].(string); ok && s != "" {
		parts = append(parts, s)
	}
	if s, ok := r["maidenname"].(string); ok && s != "" {
		parts = append(parts, s)
	} else if s, ok := r["lastname"].(string); ok && s != "" {
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return nil
	}
	return strings.Join(parts, " ")
}
