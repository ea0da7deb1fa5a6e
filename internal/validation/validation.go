// Package validation contains the logic for validating request data.
//
// Request types declare their rules with `validate` struct tags and run them
// through Struct. BindAndValidate turns bind and validation failures into
// 400 errors with one entry per offending field, named as the client spelled
// it in JSON.
package validation
