package codes

import "skpg/internal/dataset"

// LookupTable maps canonical survey codes to their display labels.
type LookupTable map[string]string

// Label returns the label for a code, or the empty missing label when the
// code has no entry.
func (t LookupTable) Label(code string) string {
	return t[code]
}

// Labels shared by several metric computations. Every other label is only
// meaningful to its own table and stays inline there.
const (
	LabelEmployed      = "Bekerja"
	LabelNotEmployed   = "Belum Bekerja"
	LabelNoInformation = "Tiada Maklumat"
	LabelNotApplicable = "Tidak Berkenaan"
)

// Citizenship labels e_warganegara.
var Citizenship = LookupTable{
	"1": "Warganegara",
	"2": "Bukan Warganegara",
}

// EmploymentStatus labels e_40, the instrument's own employment question.
var EmploymentStatus = LookupTable{
	"-2": "Tidak Berkenaan",
	"1":  "Bekerja",
	"2":  "Belum/Tidak Bekerja",
	"4":  "Bekerja Sepenuh Masa",
	"7":  "Melanjutkan Pengajian",
	"52": "Bekerja (Mempunyai Majikan/Bekerja Sendiri/Usahawan/Freelance)",
	"90": "Menganggur",
	"91": "Penganggur Aktif",
	"92": "Penganggur Tidak Aktif",
	"93": "Luar Tenaga Buruh",
}

// WorkStatusGE labels e_status_GE2024, the 2024 instrument's condensed
// employment state.
var WorkStatusGE = LookupTable{
	"-2": "Tidak Berkenaan",
	"1":  "Bekerja",
	"5":  "Belum Bekerja",
}

// WorkStatus labels e_status. Codes "-2" and "0" both mean the respondent
// gave no usable answer and share one label.
var WorkStatus = LookupTable{
	"-2": "Tiada Maklumat",
	"0":  "Tiada Maklumat",
	"1":  "Bekerja",
	"2":  "Melanjutkan Pengajian",
	"3":  "Meningkatkan kemahiran",
	"4":  "Menunggu penempatan pekerjaan",
	"5":  "Belum Bekerja",
}

// Participation labels e_statusPenyertaan, survey participation.
var Participation = LookupTable{
	"1": "Sertai",
	"2": "Tidak/Belum Sertai",
	"3": "Tidak Lengkap",
}

// NonWorkReason labels e_54, the reason a graduate is not working.
var NonWorkReason = LookupTable{
	"1":  "Melanjutkan Pengajian",
	"5":  "Sedang Mencari Pekerjaan",
	"7":  "Tanggungjawab Terhadap Keluarga",
	"8":  "Kurang Keyakinan Diri Untuk Memasuki Dunia Pekerjaan",
	"10": "Memilih Untuk Tidak Bekerja",
	"11": "Tidak Berminat Untuk Bekerja",
	"13": "Menunggu Penempatan Pekerjaan (Telah Menerima Tawaran Pekerjaan)",
	"14": "Mengikut Kursus Jangka Pendek",
	"15": "Berehat/Melancong/Bercuti",
	"17": "Menunggu Keputusan/Tawaran Melanjutkan Pengajian",
	"18": "Enggan Berpindah Ke Tempat Lain",
	"20": "Sebab Hilang Upaya",
	"21": "Tidak Dibenarkan Untuk Bekerja Oleh Keluarga",
	"28": "Tidak Dibenarkan Untuk Bekerja Oleh Undang-Undang",
	"30": "Bersara Pilihan/Wajib",
	"31": "Mengikuti Program Inkubasi Usahawan",
	"32": "Sebab Kesihatan (Termasuk Baru Bersalin)",
	"33": "Sedang Mengikuti Kursus Peningkatan Kemahiran",
	"34": "Pekerjaan yang Ditawarkan Tidak Bersesuaian",
}

// StudyLevel labels e_peringkat. Code 63 is the legacy diploma code some
// years still carry.
var StudyLevel = LookupTable{
	"1":  "Diploma",
	"2":  "Diploma Pancasiswazah",
	"3":  "PhD",
	"4":  "Sarjana Muda",
	"5":  "Sarjana",
	"63": "Diploma",
}

// EmploymentType labels e_43, the terms of employment.
var EmploymentType = LookupTable{
	"-2": "Tidak Berkenaan",
	"4":  "Bekerja Sendiri",
	"5":  "Bekerja dengan Keluarga",
	"6":  "Majikan",
	"7":  "Pekerja Kerajaan",
	"8":  "Pekerja Swasta (Termasuk NGO)",
	"9":  "Pekerja (Kerajaan/Swasta/Pekerja Keluarga dengan upah/gaji)",
	"10": "Pekerja (Kerajaan/Swasta)",
	"40": "Freelance",
	"46": "Usahawan",
	"47": "Bekerja Sendiri (e+p-hailing)",
	"51": "Bekerja dengan Keluarga (upah/gaji)",
	"52": "Bekerja dengan Keluarga (tiada upah/gaji)",
}

// Sector labels e_45, the employer sector.
var Sector = LookupTable{
	"-2": "Tidak Berkenaan",
	"2":  "Badan Berkanun",
	"3":  "Syarikat Multinasional",
	"4":  "Syarikat Tempatan",
	"7":  "Syarikat Berkaitan Kerajaan (GLC)",
	"8":  "Perutubuhan Bukan Kerajaan (NGO)",
	"9":  "Kerajaan Persekutuan",
	"10": "Kerajaan Negeri/Tempatan",
	"11": "Ekonomi Gig",
}

// Occupation labels e_41_a, the MASCO major occupation group. Groups 1-3
// count as skilled work, 9 as low-skilled, the rest as semi-skilled.
var Occupation = LookupTable{
	"-2": "Tidak Berkenaan",
	"1":  "Pengurus",
	"2":  "Profesional",
	"3":  "Juruteknik dan Profesional Bersekutu",
	"4":  "Pekerja Sokongan Perkeranian",
	"5":  "Pekerja Perkhidmatan dan Jualan",
	"6":  "Pekerja Mahir Pertanian, Perhutanan, Penternakan, dan Perikanan",
	"7":  "Pekerja Kemahiran dan Pekerja Pertukangan yang Berkaitan",
	"8":  "Operator Mesin dan Loji, dan Pemasang",
	"9":  "Pekerja Asas",
	"10": "Angkatan Tentera",
}

// WorksInField labels e_50_b, whether the job matches the field of study.
var WorksInField = LookupTable{
	"-2": "Tidak Berkenaan",
	"-1": "Tidak Dinyatakan",
	"1":  "Ya",
	"2":  "Tidak",
}

// SalaryGroup labels e_44_kumpulan, the salary bracket question. Codes 11
// and above are the premium brackets (RM4,001 upwards).
var SalaryGroup = LookupTable{
	"-2": "Tidak Berkaitan",
	"1":  "RM1,000 dan ke bawah",
	"2":  "RM1,001 - RM1,500",
	"4":  "RM1,501 - RM2,000",
	"5":  "RM2,001 - RM2,500",
	"6":  "RM2,501 - RM3,000",
	"7":  "RM3,001 - RM3,500",
	"8":  "RM3,501 - RM4,000",
	"11": "RM4,001 - RM5,001",
	"12": "RM5,001 - RM10,001",
	"13": "RM5,001 dan ke atas",
	"14": "Lebih daripada RM10,000",
	"15": "RM5,001 - RM8,500",
	"16": "RM8,501 dan ke atas",
}

// lookups pairs each raw code column with its table. The faculty column is
// absent on purpose: its labels come from the name aliases in faculty.go.
var lookups = map[dataset.Column]LookupTable{
	dataset.ColCitizenship:    Citizenship,
	dataset.ColEmployment:     EmploymentStatus,
	dataset.ColWorkStatusGE:   WorkStatusGE,
	dataset.ColWorkStatus:     WorkStatus,
	dataset.ColParticipation:  Participation,
	dataset.ColNonWorkReason:  NonWorkReason,
	dataset.ColStudyLevel:     StudyLevel,
	dataset.ColEmploymentType: EmploymentType,
	dataset.ColSector:         Sector,
	dataset.ColOccupation:     Occupation,
	dataset.ColWorksInField:   WorksInField,
	dataset.ColSalaryGroup:    SalaryGroup,
}

// TableFor returns the lookup table for a raw code column.
func TableFor(c dataset.Column) (LookupTable, bool) {
	t, ok := lookups[c]
	return t, ok
}
