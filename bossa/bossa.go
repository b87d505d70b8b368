// Package bossa fetches Polish investment-fund unit prices from the public
// fund database published by bossa.pl, and turns them into ledger price
// updates.
//
// The database consists of two files: mstfun.lst, a text listing mapping each
// fund name to an in-archive file and its last update date, and mstfun.zip, a
// zip archive with one metastock CSV file of historical quotes per fund.
package bossa

import (
	"strings"

	"github.com/gregorias/fundquotes"
	"github.com/mozillazg/go-unidecode"
)

const bossaPrefix = "Bossa-"

// BossaID converts a fund name as published on bossa.pl to a fundquotes.ID.
func BossaID(name string) fundquotes.ID {
	return fundquotes.ID(bossaPrefix + name)
}

// BossaName returns the bossa.pl fund name from a fundquotes.ID.
func BossaName(id fundquotes.ID) (name string, ok bool) {
	return strings.CutPrefix(string(id), bossaPrefix)
}

// Normalize folds a fund name to the ASCII form used as a matching key.
// The listing is plain ASCII while ledger declarations may carry Polish
// diacritics, so both sides are transliterated before comparison.
func Normalize(name string) string {
	name = unidecode.Unidecode(name)
	return strings.Join(strings.Fields(name), " ")
}
