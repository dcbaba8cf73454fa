package mapping

import (
	"strings"

	dec "github.com/rezonia/earsiv-client/internal/decimal"
)

// Turkish number words, used to spell a payment total into the invoice
// note when the caller leaves it empty.

var turkishOnes = []string{"", "Bir", "İki", "Üç", "Dört", "Beş", "Altı", "Yedi", "Sekiz", "Dokuz"}

var turkishTens = []string{"", "On", "Yirmi", "Otuz", "Kırk", "Elli", "Altmış", "Yetmiş", "Seksen", "Doksan"}

var turkishScales = []string{"", "Bin", "Milyon", "Milyar", "Trilyon"}

// AmountToText spells a monetary amount out in Turkish lira words:
// 123.45 becomes "Yalnız Yüz Yirmi Üç TL Kırk Beş Kuruş". Non-numeric
// input yields an empty string.
func AmountToText(amount any) string {
	d, ok := dec.FromAny(amount)
	if !ok || d.IsNegative() {
		return ""
	}

	fixed := d.StringFixed(2)
	sep := strings.LastIndexByte(fixed, '.')
	lira := d.Truncate(0)
	kurus := fixed[sep+1:]

	parts := []string{"Yalnız", numberToTurkishWords(lira.IntPart()), "TL"}
	if kurus != "00" {
		cents := int64(kurus[0]-'0')*10 + int64(kurus[1]-'0')
		parts = append(parts, numberToTurkishWords(cents), "Kuruş")
	}
	return strings.Join(parts, " ")
}

func numberToTurkishWords(n int64) string {
	if n == 0 {
		return "Sıfır"
	}

	var groups []int64
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}

	var words []string
	for i := len(groups) - 1; i >= 0; i-- {
		group := groups[i]
		if group == 0 {
			continue
		}
		// "Bin", never "Bir Bin"
		if !(group == 1 && i == 1) {
			words = append(words, hundredsToTurkishWords(group)...)
		}
		if i > 0 {
			words = append(words, turkishScales[i])
		}
	}
	return strings.Join(words, " ")
}

func hundredsToTurkishWords(n int64) []string {
	var words []string
	if h := n / 100; h > 0 {
		if h > 1 {
			words = append(words, turkishOnes[h])
		}
		words = append(words, "Yüz")
	}
	if t := (n / 10) % 10; t > 0 {
		words = append(words, turkishTens[t])
	}
	if o := n % 10; o > 0 {
		words = append(words, turkishOnes[o])
	}
	return words
}
