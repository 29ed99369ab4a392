// Package validation classifies candidate move strings.
//
// A candidate is Empty (show instructions), Partial (a committable prefix is
// still being built), Complete (a legal move) or invalid. Checks run in a
// fixed order and stop at the first failure: parse, bounds, occupancy, then
// membership in the generated legal-move set. Nothing is Complete unless the
// move generator lists it.
//
// # Messages
//
// Results carry a localized message. Instructions and partial prompts are
// looked up as "<game>.INITIAL_INSTRUCTIONS" and "<game>.PARTIAL" in the
// validation namespace; rejections format the error code in the errors
// namespace.
package validation
