// Package program reconstructs the conference schedule grid from the
// published program page.
//
// The page holds one container per weekday (div#monday .. div#friday), each
// with a single schedule table. Header rows whose first cell mentions "Room"
// or "Session Chair" label the columns that follow; rows whose first cell is a
// time range hold one talk per column. Cells with a rowspan occupy their
// column for several slots, so the rows beneath them are shorter than the
// header. GridState re-inserts a placeholder for every such column so that
// talk cells line up with the room and chair labels again.
//
// The parser never fails on odd markup. Rows and days it cannot interpret are
// skipped and the rest of the page is still returned.
package program
