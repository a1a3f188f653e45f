package rotation

// Package rotation implements multi-year crew rotation planning for a vessel
// group. A candidate pool is built from onboard crew and shore reserves, each
// candidate gets a rotation slot, and the scheduler fills a month-by-vessel
// grid using round-robin sequencing with one relief transaction per month.
// Grids can be reshaped to column-oriented tables for export.
