// Package validator checks request payloads with small declarative rules.
//
// A Rule pairs a Check func with the ValidationError reported when the check
// fails. Apply runs rules in order and collects every failure into a
// ValidationErrors value, which implements error:
//
//	err := validator.Apply(
//		validator.RequiredString("action", req.Action),
//		validator.MaxLenString("action", req.Action, 64),
//	)
//
// ValidationErrors keeps the field of each failure, so HTTP layers can show
// "field: message" pairs to the user. ExtractValidationErrors and
// IsValidationError find them inside wrapped errors.
package validator
