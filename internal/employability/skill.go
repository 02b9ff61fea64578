package employability

import "skpg/internal/dataset"

// Skill band membership by MASCO major group code.
var (
	skilledCodes     = map[string]struct{}{"1": {}, "2": {}, "3": {}}
	semiSkilledCodes = map[string]struct{}{"4": {}, "5": {}, "6": {}, "7": {}, "8": {}, "10": {}}
	lowSkilledCodes  = map[string]struct{}{"9": {}}
)

// skillBandLabels is the fixed presentation order of the skill bands.
var skillBandLabels = []string{
	"Mahir",
	"Separa Mahir",
	"Berkemahiran Rendah",
}

// SkillBands splits occupation answers into skilled, semi-skilled and
// low-skilled work. The denominator is every non-missing occupation code,
// so codes outside the three groups lower all three shares.
func SkillBands(view dataset.View) ([]Bucket, error) {
	if err := requireColumns(view, dataset.ColOccupation); err != nil {
		return nil, err
	}

	var counts [3]int
	total := 0
	for i := 0; i < view.Len(); i++ {
		code := view.Value(i, dataset.ColOccupation)
		if code == dataset.MissingCode {
			continue
		}
		total++
		switch {
		case contains(skilledCodes, code):
			counts[0]++
		case contains(semiSkilledCodes, code):
			counts[1]++
		case contains(lowSkilledCodes, code):
			counts[2]++
		}
	}

	out := make([]Bucket, len(skillBandLabels))
	for i, label := range skillBandLabels {
		out[i] = Bucket{Label: label, Count: counts[i], Percent: percent(counts[i], total)}
	}
	return out, nil
}

func contains(set map[string]struct{}, code string) bool {
	_, ok := set[code]
	return ok
}
