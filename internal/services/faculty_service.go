package services

import (
	"context"
	"log/slog"

	"skpg/internal/dataset"
	"skpg/internal/employability"
	apperrors "skpg/internal/errors"
	"skpg/internal/filter"
)

// FacultySummary carries the faculty page headline cards.
type FacultySummary struct {
	Snapshot      SnapshotRef        `json:"snapshot"`
	Graduates     int                `json:"graduates"`
	Response      employability.Rate `json:"response"`
	GM            employability.Rate `json:"gm"`
	GE            employability.Rate `json:"ge"`
	PremiumSalary employability.Rate `json:"premium_salary"`
}

// FacultyDistributions carries the faculty page breakdown charts.
type FacultyDistributions struct {
	Snapshot        SnapshotRef            `json:"snapshot"`
	SalaryBands     []employability.Bucket `json:"salary_bands"`
	WorksInField    []employability.Bucket `json:"works_in_field"`
	Sectors         []employability.Bucket `json:"sectors"`
	Occupations     []employability.Bucket `json:"occupations"`
	EmploymentTypes []employability.Bucket `json:"employment_types"`
}

// FacultyService computes the faculty page bundles.
type FacultyService struct {
	store  *dataset.Store
	logger *slog.Logger
}

// NewFacultyService creates a faculty service.
func NewFacultyService(store *dataset.Store, logger *slog.Logger) *FacultyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FacultyService{
		store:  store,
		logger: logger.With(slog.String("component", "faculty_service")),
	}
}

// Options derives the cascading dropdown lists for the selection.
func (s *FacultyService) Options(ctx context.Context, sel filter.Selection) (filter.Options, error) {
	snap, err := s.store.Current()
	if err != nil {
		return filter.Options{}, err
	}
	return filter.BuildOptions(snap.Table.All(), sel), nil
}

func (s *FacultyService) view(sel filter.Selection) (dataset.View, *dataset.Snapshot, error) {
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

// Summary computes the headline cards. The summary scope is the year,
// faculty, level and program dimensions; citizenship narrows only the
// distribution charts, matching the report the page replaces.
func (s *FacultyService) Summary(ctx context.Context, sel filter.Selection) (*FacultySummary, error) {
	scope := sel
	scope.Citizenship = nil

	view, snap, err := s.view(scope)
	if err != nil {
		return nil, err
	}

	response, err := employability.ResponseRate(view)
	if err != nil {
		return nil, err
	}
	gm, err := employability.GM(view)
	if err != nil {
		return nil, err
	}
	ge, err := employability.GEByInstrument2024(view)
	if err != nil {
		return nil, err
	}
	premium, err := employability.PremiumSalaryFromRaw(view)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "faculty summary computed",
		slog.String("snapshot_id", snap.ID),
		slog.Int("rows", view.Len()))

	return &FacultySummary{
		Snapshot:      snapshotRef(snap),
		Graduates:     employability.GraduateCount(view),
		Response:      response,
		GM:            gm,
		GE:            ge,
		PremiumSalary: premium,
	}, nil
}

// Distributions computes the breakdown charts for the full selection.
func (s *FacultyService) Distributions(ctx context.Context, sel filter.Selection) (*FacultyDistributions, error) {
	view, snap, err := s.view(sel)
	if err != nil {
		return nil, err
	}

	salary, err := employability.SalaryBandsFromRaw(view)
	if err != nil {
		return nil, err
	}
	worksInField, err := employability.WorksInFieldDistribution(view)
	if err != nil {
		return nil, err
	}
	sectors, err := employability.SectorDistribution(view)
	if err != nil {
		return nil, err
	}
	occupations, err := employability.OccupationDistribution(view)
	if err != nil {
		return nil, err
	}
	types, err := employability.EmploymentTypeDistribution(view)
	if err != nil {
		return nil, err
	}

	return &FacultyDistributions{
		Snapshot:        snapshotRef(snap),
		SalaryBands:     salary,
		WorksInField:    worksInField,
		Sectors:         sectors,
		Occupations:     occupations,
		EmploymentTypes: types,
	}, nil
}

// Reasons lists why graduates of the selection are not working yet.
func (s *FacultyService) Reasons(ctx context.Context, sel filter.Selection, topN int) ([]employability.Bucket, error) {
	view, _, err := s.view(sel)
	if err != nil {
		return nil, err
	}
	return employability.ReasonsNotWorking(view, topN)
}
