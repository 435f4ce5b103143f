// Package openapi declares the contract for deriving field schemas from
// OpenAPI 3 documents. The kin-openapi backed implementation lives under
// internal/openapi and is constructed through formkit.NewOpenAPIParser.
//
// A form is taken either from a component schema (components.schemas.Name)
// or from the JSON request body of an operation (operationId). Only flat
// object properties become fields; nested objects are skipped.
//
// Field order follows the x-formkit-order list of the object schema; keys it
// does not name come after, alphabetically. Per-property extensions:
//
//	x-formkit-widget  forces a widget kind
//	x-formkit-label   overrides the derived label
//	x-formkit-equals  names a field the value must match (confirmPassword)
package openapi
