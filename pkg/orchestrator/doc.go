// Package orchestrator wires the loader -> format adapter -> model builder ->
// transformer -> decorators -> renderer pipeline behind a single Generate
// call. Every stage can be replaced through options; missing stages fall back
// to the built-in implementations (builtin storefront schemas, field schema
// and OpenAPI adapters, vanilla HTML renderer).
package orchestrator
