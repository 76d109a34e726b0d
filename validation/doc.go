// Package validation validates configuration structs via struct tags.
//
// It wraps go-playground/validator with engine conventions: field names
// in messages come from mapstructure tags (falling back to snake_case),
// so they match the config keys users write, and all failures for a
// struct are folded into a single error.
package validation
