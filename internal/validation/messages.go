package validation

import "fmt"

// Rule identifiers, named after the checks they perform.
const (
	ruleRequired = "required"
	ruleString   = "string"
	ruleInteger  = "integer"
	ruleNumeric  = "numeric"
	ruleBoolean  = "boolean"
	ruleDate     = "date"
	ruleMax      = "max"
	ruleMin      = "min"
	ruleUnique   = "unique"
	ruleExists   = "exists"
	ruleRegex    = "regex"
)

// labels maps wire field names to the Spanish display names substituted
// into generic messages.
var labels = map[string]string{
	"name":                "nombre",
	"description":         "descripción",
	"priority":            "prioridad",
	"discount_percentage": "porcentaje de descuento",
	"estado":              "estado",
	"created_date":        "fecha de creación",
	"make":                "marca",
	"model":               "modelo",
	"year":                "año",
	"price":               "precio",
	"color":               "color",
	"status":              "estado",
	"category_id":         "categoría",
	"codigo_barras":       "código de barras",
}

// customMessages overrides the generic templates for specific field+rule
// combinations. Anything not listed here falls back to the generic message
// built from the field's display label.
var customMessages = map[string]string{
	"name." + ruleRequired:                "El nombre de la categoría es obligatorio.",
	"name." + ruleUnique:                  "Ya existe una categoría con este nombre.",
	"name." + ruleMax:                     "El nombre no puede tener más de 100 caracteres.",
	"priority." + ruleRequired:            "La prioridad es obligatoria.",
	"priority." + ruleMin:                 "La prioridad debe ser mayor a 0.",
	"priority." + ruleMax:                 "La prioridad no puede ser mayor a 100.",
	"discount_percentage." + ruleRequired: "El porcentaje de descuento es obligatorio.",
	"discount_percentage." + ruleMin:      "El descuento no puede ser negativo.",
	"discount_percentage." + ruleMax:      "El descuento no puede ser mayor al 100%.",
	"estado." + ruleRequired:              "El estado es obligatorio.",
	"estado." + ruleBoolean:               "El estado debe ser verdadero o falso.",
	"category_id." + ruleExists:           "La categoría seleccionada no existe o no está activa.",
	"codigo_barras." + ruleRegex:          "El código de barras solo puede contener letras, números, guiones y guiones bajos.",
	"codigo_barras." + ruleUnique:         "Ya existe un vehículo con este código de barras.",
}

// Label returns the display name used in generic messages for a field.
// Unknown fields fall back to the wire name itself.
func Label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

// message resolves the text for a failed rule: a custom message when one is
// defined for the field+rule pair, otherwise a generic Spanish template
// with the field label substituted in. args carries rule parameters
// (the limit for max/min).
func message(field, rule string, args ...interface{}) string {
	if msg, ok := customMessages[field+"."+rule]; ok {
		return msg
	}
	label := Label(field)
	switch rule {
	case ruleRequired:
		return fmt.Sprintf("El campo %s es obligatorio.", label)
	case ruleString:
		return fmt.Sprintf("El campo %s debe ser una cadena de texto.", label)
	case ruleInteger:
		return fmt.Sprintf("El campo %s debe ser un número entero.", label)
	case ruleNumeric:
		return fmt.Sprintf("El campo %s debe ser un valor numérico.", label)
	case ruleBoolean:
		return fmt.Sprintf("El campo %s debe ser verdadero o falso.", label)
	case ruleDate:
		return fmt.Sprintf("El campo %s debe ser una fecha válida.", label)
	case ruleMax:
		if len(args) > 0 {
			return fmt.Sprintf("El campo %s no puede ser mayor a %v.", label, args[0])
		}
		return fmt.Sprintf("El campo %s excede el valor máximo permitido.", label)
	case ruleMin:
		if len(args) > 0 {
			return fmt.Sprintf("El campo %s debe ser al menos %v.", label, args[0])
		}
		return fmt.Sprintf("El campo %s no alcanza el valor mínimo permitido.", label)
	case ruleUnique:
		return fmt.Sprintf("El valor del campo %s ya está en uso.", label)
	case ruleExists:
		return fmt.Sprintf("El campo %s seleccionado no existe.", label)
	case ruleRegex:
		return fmt.Sprintf("El formato del campo %s no es válido.", label)
	}
	return fmt.Sprintf("El campo %s no es válido.", label)
}

// maxChars is the message variant for string length limits.
func maxChars(field string, limit int) string {
	if msg, ok := customMessages[field+"."+ruleMax]; ok {
		return msg
	}
	return fmt.Sprintf("El campo %s no puede tener más de %d caracteres.", Label(field), limit)
}
