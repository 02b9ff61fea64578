package services

import (
	"context"
	"log/slog"
	"time"

	"skpg/internal/dataset"
	"skpg/internal/employability"
	apperrors "skpg/internal/errors"
	"skpg/internal/filter"
)

// SnapshotRef identifies the snapshot a response was computed from.
type SnapshotRef struct {
	ID       string    `json:"id"`
	LoadedAt time.Time `json:"loaded_at"`
	Years    []int     `json:"years"`
	Rows     int       `json:"rows"`
}

func snapshotRef(snap *dataset.Snapshot) SnapshotRef {
	return SnapshotRef{
		ID:       snap.ID,
		LoadedAt: snap.LoadedAt,
		Years:    snap.Years,
		Rows:     snap.Table.RowCount(),
	}
}

// Overview bundles the dashboard headline cards.
type Overview struct {
	Snapshot        SnapshotRef                `json:"snapshot"`
	Graduates       int                        `json:"graduates"`
	Programs        int                        `json:"programs"`
	GE              employability.Rate         `json:"ge"`
	GM              employability.Rate         `json:"gm"`
	Response        employability.TargetRate   `json:"response"`
	PremiumSalary   employability.Rate         `json:"premium_salary"`
	HighestGM       employability.Extremum     `json:"highest_gm"`
	HighestGE       employability.Extremum     `json:"highest_ge"`
	HighestResponse employability.Extremum     `json:"highest_response"`
	LowestResponse  employability.Extremum     `json:"lowest_response"`
	AboveOverallGM  employability.AboveOverall `json:"above_overall_gm"`
	AboveOverallGE  employability.AboveOverall `json:"above_overall_ge"`
}

// FacultyBreakdown carries the per-faculty dashboard tables.
type FacultyBreakdown struct {
	Snapshot   SnapshotRef                       `json:"snapshot"`
	Rates      []employability.FacultyRate       `json:"rates"`
	Responses  []employability.FacultyResponse   `json:"responses"`
	Categories []employability.FacultyGECategory `json:"categories"`
}

// LevelSalaryBands is one study level's salary donut.
type LevelSalaryBands struct {
	Level string                 `json:"level"`
	Bands []employability.Bucket `json:"bands"`
}

// SalaryReport carries the salary band donuts.
type SalaryReport struct {
	Snapshot SnapshotRef            `json:"snapshot"`
	Overall  []employability.Bucket `json:"overall"`
	ByLevel  []LevelSalaryBands     `json:"by_level"`
}

// SkillsReport carries the skill and works-in-field breakdowns.
type SkillsReport struct {
	Snapshot            SnapshotRef                       `json:"snapshot"`
	Bands               []employability.Bucket            `json:"bands"`
	ByFaculty           []employability.FacultySkill      `json:"by_faculty"`
	WorksInField        []employability.Bucket            `json:"works_in_field"`
	WorksInFieldFaculty []employability.FacultyFieldMatch `json:"works_in_field_by_faculty"`
}

// StatusReport carries the work-status tables.
type StatusReport struct {
	Snapshot    SnapshotRef                `json:"snapshot"`
	ByLabel     employability.StatusTable  `json:"by_label"`
	ByCode      []employability.CodeBucket `json:"by_code"`
	StudyLevels []employability.Bucket     `json:"study_levels"`
	Reasons     []employability.Bucket     `json:"reasons"`
}

// AnnualReport carries the whole-table period trends.
type AnnualReport struct {
	Snapshot SnapshotRef               `json:"snapshot"`
	Rows     []employability.AnnualRow `json:"rows"`
	GMPivot  employability.GMPivot     `json:"gm_pivot"`
}

// salaryDonutLevels is the fixed set of study levels the dashboard shows a
// salary donut for.
var salaryDonutLevels = []string{"PhD", "Sarjana", "Sarjana Muda", "Diploma"}

// reasonsTopN bounds the reasons-not-working table on the dashboard.
const reasonsTopN = 10

// DashboardService computes the overview page bundles.
type DashboardService struct {
	store  *dataset.Store
	target float64
	logger *slog.Logger
}

// NewDashboardService creates a dashboard service. responseTarget is the
// response-rate goal in percent.
func NewDashboardService(store *dataset.Store, responseTarget float64, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		store:  store,
		target: responseTarget,
		logger: logger.With(slog.String("component", "dashboard_service")),
	}
}

// view narrows the current snapshot by the selection. An empty result is a
// typed no-data error so handlers answer 404 instead of zero-filled tables.
func (s *DashboardService) view(sel filter.Selection) (dataset.View, *dataset.Snapshot, error) {
	snap, err := s.store.Current()
	if err != nil {
		return dataset.View{}, nil, err
	}
	view := filter.Apply(snap.Table.All(), sel)
	if view.Len() == 0 {
		return dataset.View{}, nil, apperrors.NewMissingDataError(
			"no survey rows match the selection", apperrors.ErrNoMatchingRows)
	}
	return view, snap, nil
}

// Overview computes the headline cards for the selection.
func (s *DashboardService) Overview(ctx context.Context, sel filter.Selection) (*Overview, error) {
	view, snap, err := s.view(sel)
	if err != nil {
		return nil, err
	}

	ge, err := employability.GE(view)
	if err != nil {
		return nil, err
	}
	gm, err := employability.GM(view)
	if err != nil {
		return nil, err
	}
	response, err := employability.ResponseTarget(view, s.target)
	if err != nil {
		return nil, err
	}
	premium, err := employability.PremiumSalaryRate(view)
	if err != nil {
		return nil, err
	}
	programs, err := employability.ProgramCount(view)
	if err != nil {
		return nil, err
	}
	highestGM, err := employability.HighestFacultyGM(view)
	if err != nil {
		return nil, err
	}
	highestGE, err := employability.HighestFacultyGE(view)
	if err != nil {
		return nil, err
	}
	highestResponse, err := employability.HighestFacultyResponseRate(view)
	if err != nil {
		return nil, err
	}
	lowestResponse, err := employability.LowestFacultyResponseRate(view)
	if err != nil {
		return nil, err
	}
	aboveGM, err := employability.FacultiesAboveOverallGM(view)
	if err != nil {
		return nil, err
	}
	aboveGE, err := employability.FacultiesAboveOverallGE(view)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "overview computed",
		slog.String("snapshot_id", snap.ID),
		slog.Int("rows", view.Len()))

	return &Overview{
		Snapshot:        snapshotRef(snap),
		Graduates:       employability.GraduateCount(view),
		Programs:        programs,
		GE:              ge,
		GM:              gm,
		Response:        response,
		PremiumSalary:   premium,
		HighestGM:       highestGM,
		HighestGE:       highestGE,
		HighestResponse: highestResponse,
		LowestResponse:  lowestResponse,
		AboveOverallGM:  aboveGM,
		AboveOverallGE:  aboveGE,
	}, nil
}

// Faculties computes the per-faculty tables for the selection.
func (s *DashboardService) Faculties(ctx context.Context, sel filter.Selection) (*FacultyBreakdown, error) {
	view, snap, err := s.view(sel)
	if err != nil {
		return nil, err
	}

	rates, err := employability.FacultyRates(view)
	if err != nil {
		return nil, err
	}
	responses, err := employability.FacultyResponseRates(view)
	if err != nil {
		return nil, err
	}
	categories, err := employability.FacultyGECategories(view)
	if err != nil {
		return nil, err
	}

	return &FacultyBreakdown{
		Snapshot:   snapshotRef(snap),
		Rates:      rates,
		Responses:  responses,
		Categories: categories,
	}, nil
}

// SalaryBands computes the overall donut plus one donut per study level.
func (s *DashboardService) SalaryBands(ctx context.Context, sel filter.Selection) (*SalaryReport, error) {
	view, snap, err := s.view(sel)
	if err != nil {
		return nil, err
	}

	overall, err := employability.SalaryBands(view)
	if err != nil {
		return nil, err
	}

	byLevel := make([]LevelSalaryBands, 0, len(salaryDonutLevels))
	for _, level := range salaryDonutLevels {
		bands, err := employability.SalaryBandsByLevel(view, level)
		if err != nil {
			return nil, err
		}
		byLevel = append(byLevel, LevelSalaryBands{Level: level, Bands: bands})
	}

	return &SalaryReport{
		Snapshot: snapshotRef(snap),
		Overall:  overall,
		ByLevel:  byLevel,
	}, nil
}

// Skills computes the skill and works-in-field breakdowns.
func (s *DashboardService) Skills(ctx context.Context, sel filter.Selection) (*SkillsReport, error) {
	view, snap, err := s.view(sel)
	if err != nil {
		return nil, err
	}

	bands, err := employability.SkillBands(view)
	if err != nil {
		return nil, err
	}
	byFaculty, err := employability.FacultySkillBands(view)
	if err != nil {
		return nil, err
	}
	worksInField, err := employability.WorksInFieldDistribution(view)
	if err != nil {
		return nil, err
	}
	byFacultyField, err := employability.FacultyWorksInField(view)
	if err != nil {
		return nil, err
	}

	return &SkillsReport{
		Snapshot:            snapshotRef(snap),
		Bands:               bands,
		ByFaculty:           byFaculty,
		WorksInField:        worksInField,
		WorksInFieldFaculty: byFacultyField,
	}, nil
}

// Status computes the work-status tables.
func (s *DashboardService) Status(ctx context.Context, sel filter.Selection) (*StatusReport, error) {
	view, snap, err := s.view(sel)
	if err != nil {
		return nil, err
	}

	byLabel, err := employability.WorkStatusDistribution(view)
	if err != nil {
		return nil, err
	}
	byCode, err := employability.WorkStatusCodeDistribution(view)
	if err != nil {
		return nil, err
	}
	levels, err := employability.StudyLevelDistribution(view)
	if err != nil {
		return nil, err
	}
	reasons, err := employability.ReasonsNotWorking(view, reasonsTopN)
	if err != nil {
		return nil, err
	}

	return &StatusReport{
		Snapshot:    snapshotRef(snap),
		ByLabel:     byLabel,
		ByCode:      byCode,
		StudyLevels: levels,
		Reasons:     reasons,
	}, nil
}

// Annual computes the period trends. These always run over the whole table;
// the year filter would make a one-point trend.
func (s *DashboardService) Annual(ctx context.Context) (*AnnualReport, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	view := snap.Table.All()

	rows, err := employability.AnnualOverview(view)
	if err != nil {
		return nil, err
	}
	pivot, err := employability.GMByYearAndLevel(view)
	if err != nil {
		return nil, err
	}

	return &AnnualReport{
		Snapshot: snapshotRef(snap),
		Rows:     rows,
		GMPivot:  pivot,
	}, nil
}
