// Package talk provides the record type produced by the program parser.
//
// A Record is one talk occurrence on the conference program: the weekday and
// time slot it was printed in, the room and session chair resolved from the
// day's header rows, and the title, authors, link and abstract taken from the
// cell itself. Fields that could not be determined hold NotAvailable rather
// than an empty string so downstream consumers can tell "missing" from "blank".
package talk
