package codes

// CanonicalFaculties is the fixed reporting order of every faculty and
// academy code. Per-faculty tables always carry these twenty rows and
// extremum scans resolve ties by this order.
var CanonicalFaculties = []string{
	"API",
	"APM",
	"FAB",
	"FBL",
	"FF",
	"FK",
	"EDU",
	"FOD",
	"FPE",
	"FOM",
	"FS",
	"FSKTM",
	"FSSS",
	"FSK",
	"FSSE",
	"FUU",
	"AEI",
	"IAS",
	"INPUMA",
	"UMCCED",
}

// facultyAliases maps faculty names, as they appear after cell
// canonicalization, to their short codes. Several faculties have been
// renamed over the survey years, so multiple names share a code.
var facultyAliases = map[string]string{
	"Fakulti Sains":                                      "FS",
	"Fakulti Sains Komputer Dan Teknologi Maklumat":      "FSKTM",
	"Fakulti Kejuruteraan":                               "FK",
	"Fakulti Perubatan":                                  "FOM",
	"Fakulti Farmasi":                                    "FF",
	"Fakulti Undang-Undang":                              "FUU",
	"Fakulti Ekonomi Dan Pentadbiran":                    "FPE",
	"Fakulti Pendidikan":                                 "EDU",
	"Fakulti Bahasa Dan Linguistik":                      "FBL",
	"Fakulti Alam Bina":                                  "FAB",
	"Akademi Pengajian Islam":                            "API",
	"Akademi Pengajian Melayu":                           "APM",
	"Fakulti Sastera Dan Sains Sosial":                   "FSSS",
	"Fakulti Seni Kreatif":                               "FSK",
	"Pusat Kebudayaan":                                   "FSK",
	"Fakulti Pergigian":                                  "FOD",
	"Fakulti Perniagaan Dan Ekonomi":                     "FPE",
	"Institut Asia Eropah":                               "AEI",
	"Institut Pengajian Termaju":                         "IAS",
	"Int Antarabangsa Polisi Awam Dan Pengurusan (Inpuma)": "INPUMA",
	"Fakulti Sukan Dan Sains Eksesais":                   "FSSE",
	"Pusat Sukan Dan Sains Eksesais":                     "FSSE",
	"Pusat Sukan & Sains Eksesais":                       "FSSE",
	"Fakulti Sukan & Sains Eksesais":                     "FSSE",
	"University Of Malaya Centre For Continuing Education": "UMCCED",
	"Umcced": "UMCCED",
}

// FacultyCode resolves a delivered faculty name to its canonical short code.
// Unknown names resolve to the empty missing label.
func FacultyCode(name string) string {
	return facultyAliases[name]
}

// IsCanonicalFaculty reports whether code is one of the twenty reporting
// codes.
func IsCanonicalFaculty(code string) bool {
	for _, c := range CanonicalFaculties {
		if c == code {
			return true
		}
	}
	return false
}
