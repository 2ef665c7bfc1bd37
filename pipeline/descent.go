package pipeline

import "github.com/crimedata-tools/lapd-enrich/refdata"

// DescentNames maps the one-letter victim descent codes to readable
// descriptions. The dataset documentation ships these inline rather than
// as a lookup file.
var DescentNames = map[string]string{
	"A": "Other Asian",
	"B": "Black",
	"C": "Chinese",
	"D": "Cambodian",
	"F": "Filipino",
	"G": "Guamanian",
	"H": "Hispanic/Latin/Mexican",
	"I": "American Indian/Alaskan Native",
	"J": "Japanese",
	"K": "Korean",
	"L": "Laotian",
	"O": "Other",
	"P": "Pacific Islander",
	"S": "Samoan",
	"U": "Hawaiian",
	"V": "Vietnamese",
	"W": "White",
	"X": "Unknown",
	"Z": "Asian Indian",
}

func descentTable() *refdata.Table {
	return refdata.FromMap("victim descent", DescentNames)
}
