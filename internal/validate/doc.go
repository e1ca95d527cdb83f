// Package validate checks the rules a parsed descriptor.Module must follow
// before it can be lowered.
//
// Validation is fail-fast: the first violated rule is returned as a
// *diagnostic.Error and nothing after it is checked. Non-fatal findings
// are collected as warnings:
//
//	rgb_range_override  an rgb parameter also declares a range
//	unknown_category    the category is not in the protocol table
//	empty_range         a range whose start is above its end
package validate
