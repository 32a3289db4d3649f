// Package mos downloads scanned parish-register images from the Matricula
// online archive and mirrors them into a local directory tree
// (parish, book, page).
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package mos
