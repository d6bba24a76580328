// Package pagemd turns an arbitrary web page into clean, de-duplicated,
// model-ready markdown. It fetches the page (escalating from a plain
// HTTP GET to a scripted browser render only when the page looks
// incomplete), optionally extracts term-anchored fragments via radial
// search, expands a bounded number of outbound content links, and
// normalizes the result into compact text.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., rod/,
// goquery/, htmltomarkdown/, sqlite/).
package pagemd
