// Package memory implementa los puertos de persistencia en memoria.
// Replica las restricciones del esquema SQL; la usan los tests de casos de uso y handlers.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/daily-report-api/internal/domain"
	"github.com/jhoicas/daily-report-api/internal/domain/entity"
	"github.com/jhoicas/daily-report-api/internal/domain/repository"
)

// Store guarda todas las tablas.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	seq  int64

	salesPersons map[int64]entity.SalesPerson
	customers    map[int64]entity.Customer
	reports      map[int64]entity.Report
	comments     map[int64]entity.Comment
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		salesPersons: map[int64]entity.SalesPerson{},
		customers:    map[int64]entity.Customer{},
		reports:      map[int64]entity.Report{},
		comments:     map[int64]entity.Comment{},
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// SalesPersons adaptador de repository.SalesPersonRepository.
func (s *Store) SalesPersons() repository.SalesPersonRepository { return salesPersonRepo{s} }

// Customers adaptador de repository.CustomerRepository.
func (s *Store) Customers() repository.CustomerRepository { return customerRepo{s} }

// Reports adaptador de repository.ReportRepository.
func (s *Store) Reports() repository.ReportRepository { return reportRepo{s} }

// Comments adaptador de repository.CommentRepository.
func (s *Store) Comments() repository.CommentRepository { return commentRepo{s} }

var _ repository.TxRunner = (*Store)(nil)

// RunReports ejecuta fn de forma serializada; si fn falla se restauran los informes.
func (s *Store) RunReports(ctx context.Context, fn func(reports repository.ReportRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := make(map[int64]entity.Report, len(s.reports))
	for id, r := range s.reports {
		snapshot[id] = cloneReport(r)
	}
	comments := make(map[int64]entity.Comment, len(s.comments))
	for id, c := range s.comments {
		comments[id] = c
	}
	s.mu.RUnlock()

	if err := fn(s.Reports()); err != nil {
		s.mu.Lock()
		s.reports = snapshot
		s.comments = comments
		s.mu.Unlock()
		return err
	}
	return nil
}

func cloneReport(r entity.Report) entity.Report {
	r.VisitRecords = append([]entity.VisitRecord(nil), r.VisitRecords...)
	return r
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}

// ─── Vendedores ──────────────────────────────────────────────────────────────

type salesPersonRepo struct{ s *Store }

func (r salesPersonRepo) Create(_ context.Context, sp *entity.SalesPerson) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.salesPersons {
		if other.EmployeeCode == sp.EmployeeCode || other.Email == sp.Email {
			return domain.ErrConflict
		}
	}
	if sp.ManagerID != nil {
		if _, ok := s.salesPersons[*sp.ManagerID]; !ok {
			return domain.ErrConflict
		}
	}
	sp.ID = s.nextID()
	s.salesPersons[sp.ID] = *sp
	return nil
}

func (r salesPersonRepo) GetByID(_ context.Context, id int64) (*entity.SalesPerson, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sp, ok := r.s.salesPersons[id]
	if !ok {
		return nil, nil
	}
	return &sp, nil
}

func (r salesPersonRepo) GetByEmail(_ context.Context, email string) (*entity.SalesPerson, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sp := range r.s.salesPersons {
		if sp.Email == email {
			out := sp
			return &out, nil
		}
	}
	return nil, nil
}

func (r salesPersonRepo) List(_ context.Context, f repository.SalesPersonFilter) ([]*entity.SalesPerson, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.SalesPerson
	for _, sp := range r.s.salesPersons {
		if f.IsActive != nil && sp.IsActive != *f.IsActive {
			continue
		}
		if f.Role != nil && sp.Role != *f.Role {
			continue
		}
		out := sp
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].EmployeeCode < all[j].EmployeeCode })
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (r salesPersonRepo) Update(_ context.Context, sp *entity.SalesPerson) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.salesPersons[sp.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, other := range s.salesPersons {
		if id != sp.ID && other.Email == sp.Email {
			return domain.ErrConflict
		}
	}
	if sp.ManagerID != nil && *sp.ManagerID == sp.ID {
		return domain.ErrInvalidInput
	}
	s.salesPersons[sp.ID] = *sp
	return nil
}

func (r salesPersonRepo) Deactivate(_ context.Context, id int64, at time.Time) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.salesPersons[id]
	if !ok {
		return domain.ErrNotFound
	}
	sp.IsActive = false
	sp.UpdatedAt = at
	s.salesPersons[id] = sp
	return nil
}

// ─── Clientes ────────────────────────────────────────────────────────────────

type customerRepo struct{ s *Store }

func (r customerRepo) Create(_ context.Context, c *entity.Customer) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.customers {
		if other.CustomerCode == c.CustomerCode {
			return domain.ErrConflict
		}
	}
	c.ID = s.nextID()
	s.customers[c.ID] = *c
	return nil
}

func (r customerRepo) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r customerRepo) List(_ context.Context, f repository.CustomerFilter) ([]*entity.Customer, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := strings.ToLower(f.Query)
	var all []*entity.Customer
	for _, c := range r.s.customers {
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.CompanyName), q) &&
			!strings.Contains(strings.ToLower(c.CustomerCode), q) {
			continue
		}
		out := c
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (r customerRepo) Update(_ context.Context, c *entity.Customer) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	s.customers[c.ID] = *c
	return nil
}

func (r customerRepo) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[id]; !ok {
		return domain.ErrNotFound
	}
	for _, rep := range s.reports {
		for _, v := range rep.VisitRecords {
			if v.CustomerID == id {
				return domain.ErrConflict
			}
		}
	}
	delete(s.customers, id)
	return nil
}

// ─── Informes ────────────────────────────────────────────────────────────────

type reportRepo struct{ s *Store }

func (r reportRepo) Create(_ context.Context, rep *entity.Report) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.salesPersons[rep.SalesPersonID]; !ok {
		return domain.ErrConflict
	}
	for _, other := range s.reports {
		if other.SalesPersonID == rep.SalesPersonID && other.ReportDate.Equal(rep.ReportDate) {
			return domain.ErrConflict
		}
	}
	if err := s.checkVisits(rep.VisitRecords); err != nil {
		return err
	}
	rep.ID = s.nextID()
	s.assignVisitIDs(rep)
	s.reports[rep.ID] = cloneReport(*rep)
	return nil
}

func (r reportRepo) GetByID(_ context.Context, id int64) (*entity.Report, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	rep, ok := s.reports[id]
	if !ok {
		return nil, nil
	}
	out := s.hydrate(rep)
	return &out, nil
}

func (r reportRepo) List(_ context.Context, f repository.ReportFilter) ([]*entity.Report, int, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	var all []*entity.Report
	for _, rep := range s.reports {
		if !s.visible(rep, f) {
			continue
		}
		out := s.hydrate(rep)
		out.VisitRecords = nil
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].ReportDate.Equal(all[j].ReportDate) {
			return all[i].ReportDate.After(all[j].ReportDate)
		}
		return all[i].ID > all[j].ID
	})
	return page(all, f.Limit, f.Offset), len(all), nil
}

func (r reportRepo) Update(_ context.Context, rep *entity.Report) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.reports[rep.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Status == entity.ReportStatusReviewed {
		return fmt.Errorf("%w: el informe ya fue revisado", domain.ErrConflict)
	}
	if err := s.checkVisits(rep.VisitRecords); err != nil {
		return err
	}
	s.assignVisitIDs(rep)
	cur.Problem = rep.Problem
	cur.Plan = rep.Plan
	cur.Status = rep.Status
	cur.UpdatedAt = rep.UpdatedAt
	cur.VisitRecords = rep.VisitRecords
	s.reports[rep.ID] = cloneReport(cur)
	return nil
}

func (r reportRepo) UpdateStatus(_ context.Context, id int64, from, to entity.ReportStatus, at time.Time) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.reports[id]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Status != from {
		return fmt.Errorf("%w: el informe ya no está en estado %s", domain.ErrConflict, from)
	}
	cur.Status = to
	cur.UpdatedAt = at
	s.reports[id] = cur
	return nil
}

func (r reportRepo) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.reports[id]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Status != entity.ReportStatusDraft {
		return fmt.Errorf("%w: solo se pueden eliminar borradores", domain.ErrConflict)
	}
	delete(s.reports, id)
	for cid, c := range s.comments {
		if c.ReportID == id {
			delete(s.comments, cid)
		}
	}
	return nil
}

func (s *Store) checkVisits(visits []entity.VisitRecord) error {
	for _, v := range visits {
		if _, ok := s.customers[v.CustomerID]; !ok {
			return domain.ErrConflict
		}
	}
	return nil
}

func (s *Store) assignVisitIDs(rep *entity.Report) {
	for i := range rep.VisitRecords {
		rep.VisitRecords[i].ID = s.nextID()
		rep.VisitRecords[i].ReportID = rep.ID
	}
}

// hydrate completa los campos de lectura (nombres y conteos). Requiere s.mu tomado.
func (s *Store) hydrate(rep entity.Report) entity.Report {
	out := cloneReport(rep)
	out.SalesPersonName = s.salesPersons[rep.SalesPersonID].Name
	for i := range out.VisitRecords {
		out.VisitRecords[i].CustomerName = s.customers[out.VisitRecords[i].CustomerID].Name
	}
	sort.SliceStable(out.VisitRecords, func(i, j int) bool {
		return out.VisitRecords[i].VisitTime < out.VisitRecords[j].VisitTime
	})
	out.VisitCount = len(out.VisitRecords)
	for _, c := range s.comments {
		if c.ReportID == rep.ID {
			out.CommentCount++
		}
	}
	return out
}

func (s *Store) visible(rep entity.Report, f repository.ReportFilter) bool {
	switch f.Scope {
	case entity.ScopeAll:
	case entity.ScopeTeam:
		owner := s.salesPersons[rep.SalesPersonID]
		if rep.SalesPersonID != f.ViewerID && !owner.ReportsTo(f.ViewerID) {
			return false
		}
	default:
		if rep.SalesPersonID != f.ViewerID {
			return false
		}
	}
	if f.SalesPersonID != nil && rep.SalesPersonID != *f.SalesPersonID {
		return false
	}
	if f.Status != nil && rep.Status != *f.Status {
		return false
	}
	if f.DateFrom != nil && rep.ReportDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && rep.ReportDate.After(*f.DateTo) {
		return false
	}
	return true
}

// ─── Comentarios ─────────────────────────────────────────────────────────────

type commentRepo struct{ s *Store }

func (r commentRepo) Create(_ context.Context, c *entity.Comment) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[c.ReportID]; !ok {
		return domain.ErrConflict
	}
	c.ID = s.nextID()
	s.comments[c.ID] = *c
	return nil
}

func (r commentRepo) GetByID(_ context.Context, id int64) (*entity.Comment, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, nil
	}
	c.AuthorName = s.salesPersons[c.SalesPersonID].Name
	return &c, nil
}

func (r commentRepo) ListByReport(_ context.Context, reportID int64) ([]*entity.Comment, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*entity.Comment
	for _, c := range s.comments {
		if c.ReportID != reportID {
			continue
		}
		out := c
		out.AuthorName = s.salesPersons[c.SalesPersonID].Name
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r commentRepo) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}
