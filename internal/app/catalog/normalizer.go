package catalog

import (
	"strconv"
	"strings"

	"github.com/tiendamx/tienda-engine/internal/app/model"
)

// RawRecord is one upstream product record, decoded but not yet
// normalized. The upstream API is inconsistent about field names:
// depending on the serializer version it emits English names, Spanish
// names, or a nested category object.
type RawRecord map[string]interface{}

// Field resolution order, first present (non-null) wins:
//
//	id           id
//	slug         slug, else "SKU-" + id
//	name         name, nombre
//	price        price, precio
//	description  description, descripcion
//	categoryName category_name, categoria, category.name, category.nombre
//	image        image, imagen
//	stock        stock, existencia
//
// Normalize is total: every record, however malformed, yields a
// Product with all required fields populated from defaults. It never
// mutates its input and performs no I/O.
func Normalize(raw RawRecord) model.Product {
	id := coerceString(pick(raw, "id"))

	slug := coerceString(pick(raw, "slug"))
	if slug == "" {
		slug = "SKU-" + id
	}

	name := coerceString(pick(raw, "name", "nombre"))
	if name == "" {
		name = model.PlaceholderName
	}

	price := coerceNumber(pick(raw, "price", "precio"))
	if price < 0 {
		price = 0
	}

	return model.Product{
		ID:           id,
		Slug:         slug,
		Name:         name,
		Price:        price,
		Description:  coerceString(pick(raw, "description", "descripcion")),
		CategoryName: resolveCategory(raw),
		Image:        coerceString(pick(raw, "image", "imagen")),
		Stock:        resolveStock(raw),
	}
}

func resolveCategory(raw RawRecord) string {
	if v, ok := lookup(raw, "category_name", "categoria"); ok {
		return coerceString(v)
	}
	// Nested category object from the detail serializer.
	if nested, ok := raw["category"].(map[string]interface{}); ok {
		if v, ok := lookup(nested, "name", "nombre"); ok {
			return coerceString(v)
		}
	}
	return ""
}

func resolveStock(raw RawRecord) *int {
	v, ok := lookup(raw, "stock", "existencia")
	if !ok {
		return nil
	}
	stock := int(coerceNumber(v))
	if stock < 0 {
		stock = 0
	}
	return &stock
}

// lookup returns the first present, non-null value among keys.
func lookup(raw map[string]interface{}, keys ...string) (interface{}, bool) {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func pick(raw map[string]interface{}, keys ...string) interface{} {
	v, _ := lookup(raw, keys...)
	return v
}

func coerceString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		// Numeric ids arrive as JSON numbers.
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

// coerceNumber converts numeric or numeric-string values, defaulting
// to 0 on anything unparseable.
func coerceNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
