// Package forecast extends country histories with predicted days.
//
// A model answers only one day ahead, so an N day forecast is a rollout: the
// last row of the history is sent for prediction, the answer becomes a new
// row, and that row is sent next. Steps of one country are strictly
// sequential. Countries are independent; Runner trains and rolls them out
// concurrently, each on its own copy of the history, and reports every
// country's outcome separately.
//
// Rows appended by a rollout always get a fresh new_cases, log_growth and
// day_index. With Driver.Parity set they also get arith_growth and
// cum_growth recomputed the same way the feature engine does; without it
// those two columns are carried forward unchanged from the previous row.
package forecast
