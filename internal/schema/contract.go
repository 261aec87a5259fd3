// Package schema declares the column contracts of the three destination
// tables. A contract fixes the column set and order used for row projection,
// batched loading, and table bootstrap DDL; builders select exactly these
// columns as their last step.
package schema

// Field is one destination column.
type Field struct {
	Name string
	// Type is the warehouse column type: "bigint", "text", "numeric",
	// "date", or "timestamptz".
	Type string
}

// Contract fixes the destination table name and ordered column set.
type Contract struct {
	Table  string
	Fields []Field
}

// Columns returns the column names in contract order.
func (c Contract) Columns() []string {
	cols := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		cols[i] = f.Name
	}
	return cols
}

// DimProduto holds one row per distinct product.
var DimProduto = Contract{
	Table: "dim_produto",
	Fields: []Field{
		{Name: "product_id", Type: "bigint"},
		{Name: "sku", Type: "text"},
		{Name: "product_name", Type: "text"},
		{Name: "category", Type: "text"},
		{Name: "brand", Type: "text"},
		{Name: "price", Type: "numeric"},
		{Name: "rating", Type: "numeric"},
		{Name: "stock", Type: "numeric"},
		{Name: "barcode", Type: "text"},
		{Name: "created_at", Type: "date"},
	},
}

// DimUsuario holds one row per distinct user, scrubbed of sensitive fields.
var DimUsuario = Contract{
	Table: "dim_usuario",
	Fields: []Field{
		{Name: "user_id", Type: "bigint"},
		{Name: "name", Type: "text"},
		{Name: "email", Type: "text"},
		{Name: "gender", Type: "text"},
		{Name: "birthdate", Type: "date"},
		{Name: "city", Type: "text"},
		{Name: "state", Type: "text"},
		{Name: "country", Type: "text"},
	},
}

// FactTransacao holds one row per transaction line, expanded from carts.
var FactTransacao = Contract{
	Table: "fact_transacao",
	Fields: []Field{
		{Name: "sale_id", Type: "bigint"},
		{Name: "user_id", Type: "bigint"},
		{Name: "product_id", Type: "bigint"},
		{Name: "transaction_date", Type: "timestamptz"},
		{Name: "quantity", Type: "numeric"},
		{Name: "unit_price", Type: "numeric"},
		{Name: "total_price", Type: "numeric"},
		{Name: "discount_pct", Type: "numeric"},
		{Name: "final_price", Type: "numeric"},
	},
}
