// Package employability computes the SKPG reporting metrics over dataset
// views: graduate employability (GE) and marketability (GM), survey
// response rates, salary and skill bands, per-faculty breakdowns and
// year-over-year trends.
//
// Every function takes a dataset.View that has already been narrowed by
// the filter package, so one metric implementation serves the dashboard,
// the faculty page and any slice of either. Percentages are computed at
// full precision and rounded to one decimal place exactly once, at
// assembly. A metric whose denominator comes out empty reports zero
// rather than failing; only structurally missing columns are errors.
package employability
