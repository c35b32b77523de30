// Package normalize turns the published time series table into canonical
// records.
//
// The source carries a header row followed by a descriptor row (units and
// tags, not data) and then one row per sub-region and date. Fields are
// located by header name rather than by position; a missing field, an
// unparseable date or a non-numeric count fails the whole load with a
// MalformedInputError so that nothing downstream runs on a broken feed.
package normalize
