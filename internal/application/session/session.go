package session

import (
	"sync"

	"github.com/diillson/billing-dashboard-go/internal/application/pipeline"
	"github.com/diillson/billing-dashboard-go/internal/domain/entity"
	"github.com/diillson/billing-dashboard-go/internal/shared/types"
)

// Ticket identifies one recomputation. Results carrying an old ticket are discarded.
type Ticket uint64

// Session guarda o estado de um upload: tabela bruta, mapeamento, registros canônicos,
// seleção de filtros e o último resultado publicado.
type Session struct {
	mu sync.Mutex

	table     *entity.RawTable
	guess     entity.ColumnMapping
	mapping   entity.ColumnMapping
	records   []entity.CanonicalRecord
	selection entity.FilterSelection
	basis     entity.TrendBasis

	latest Ticket
	result *entity.DashboardResult
}

// New returns an empty session with fiscal trend basis.
func New() *Session {
	return &Session{basis: entity.TrendFiscal}
}

// Load replaces the dataset. Mapping, filters and result are reset together and
// any in-flight recomputation becomes stale. It returns the guessed mapping.
func (s *Session) Load(table entity.RawTable) entity.ColumnMapping {
	s.mu.Lock()
	defer s.mu.Unlock()

	if table.Types == nil {
		table.Types = pipeline.InferColumnTypes(table.Columns, table.Rows)
	}
	s.table = &table
	s.guess = pipeline.Normalize(table.Columns, table.Types)
	s.mapping = nil
	s.records = nil
	s.selection = entity.FilterSelection{}
	s.result = nil
	s.latest++

	return s.guess.Clone()
}

// Table returns the loaded raw table.
func (s *Session) Table() (entity.RawTable, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table == nil {
		return entity.RawTable{}, false
	}
	return *s.table, true
}

// Mapping returns the confirmed mapping, or the guess while unconfirmed.
func (s *Session) Mapping() entity.ColumnMapping {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mapping != nil {
		return s.mapping.Clone()
	}
	return s.guess.Clone()
}

// Confirmed reports whether the mapping of the current upload is frozen.
func (s *Session) Confirmed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapping != nil
}

// ConfirmMapping valida e congela o mapeamento, convertendo as linhas.
// Uma segunda confirmação falha com ErrMappingFrozen até o próximo Load.
func (s *Session) ConfirmMapping(mapping entity.ColumnMapping) ([]entity.CanonicalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table == nil {
		return nil, types.ErrNoDataset
	}
	if s.mapping != nil {
		return nil, types.ErrMappingFrozen
	}

	records, err := pipeline.Apply(*s.table, mapping)
	if err != nil {
		return nil, err
	}

	s.mapping = mapping.Clone()
	s.records = records
	s.latest++
	return records, nil
}

// SetSelection replaces the filter selection as given. Values absent from the
// current dataset are kept, so they still restrict rows, and returned per dimension.
func (s *Session) SetSelection(sel entity.FilterSelection) (map[entity.Field][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mapping == nil {
		return nil, types.ErrMappingUnconfirmed
	}

	s.selection = sel
	s.latest++
	return pipeline.UnknownValues(sel, pipeline.Options(s.records)), nil
}

func (s *Session) Selection() entity.FilterSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// SetTrendBasis switches the monthly trend between fiscal and calendar years.
func (s *Session) SetTrendBasis(basis entity.TrendBasis) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if basis != entity.TrendCalendar {
		basis = entity.TrendFiscal
	}
	if basis != s.basis {
		s.basis = basis
		s.latest++
	}
}

// Begin starts a recomputation and supersedes every earlier ticket.
func (s *Session) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest++
	return s.latest
}

// Publish stores result only if ticket is still the latest one.
func (s *Session) Publish(ticket Ticket, result entity.DashboardResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket != s.latest {
		return false
	}
	s.result = &result
	return true
}

// Recompute filters and aggregates a snapshot of the session, then publishes
// the result. The returned bool is false when a newer change superseded it.
func (s *Session) Recompute() (entity.DashboardResult, bool, error) {
	ticket := s.Begin()

	s.mu.Lock()
	if s.mapping == nil {
		s.mu.Unlock()
		return entity.DashboardResult{}, false, types.ErrMappingUnconfirmed
	}
	records, sel, basis, mapping := s.records, s.selection, s.basis, s.mapping.Clone()
	s.mu.Unlock()

	result := pipeline.Build(records, sel, basis)
	result.Mapping = mapping
	return result, s.Publish(ticket, result), nil
}

// Result returns the last published result.
func (s *Session) Result() (entity.DashboardResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		return entity.DashboardResult{}, false
	}
	return *s.result, true
}
