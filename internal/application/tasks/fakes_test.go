package tasks_test

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/compliance-api/internal/application/tasks"
	"github.com/jhoicas/compliance-api/internal/domain"
	"github.com/jhoicas/compliance-api/internal/domain/entity"
	"github.com/jhoicas/compliance-api/internal/domain/repository"
)

// ── Repos en memoria ──────────────────────────────────────────────────────────

type memTasks struct {
	byID map[string]*entity.ComplianceTask
	keys map[string]string
}

func newMemTasks() *memTasks {
	return &memTasks{byID: map[string]*entity.ComplianceTask{}, keys: map[string]string{}}
}

func (m *memTasks) CreateIfAbsent(_ context.Context, t *entity.ComplianceTask) (bool, error) {
	key := t.RegistrationID + "|" + t.RuleCode + "|" + t.PeriodLabel
	if _, ok := m.keys[key]; ok {
		return false, nil
	}
	cp := *t
	m.byID[t.ID] = &cp
	m.keys[key] = t.ID
	return true, nil
}

func (m *memTasks) GetByID(_ context.Context, companyID, id string) (*entity.ComplianceTask, error) {
	t, ok := m.byID[id]
	if !ok || t.CompanyID != companyID {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memTasks) List(_ context.Context, f repository.TaskFilter) ([]*entity.ComplianceTask, int, error) {
	want := map[string]bool{}
	for _, s := range f.Statuses {
		want[s] = true
	}
	var all []*entity.ComplianceTask
	for _, t := range m.sorted() {
		if t.CompanyID != f.CompanyID || (f.CustomerID != "" && t.CustomerID != f.CustomerID) {
			continue
		}
		if len(want) > 0 && !want[t.Status] {
			continue
		}
		all = append(all, t)
	}
	total := len(all)
	if f.Offset >= len(all) {
		return nil, total, nil
	}
	all = all[f.Offset:]
	if f.Limit > 0 && len(all) > f.Limit {
		all = all[:f.Limit]
	}
	return all, total, nil
}

func (m *memTasks) ListOpen(_ context.Context, companyID string) ([]*entity.ComplianceTask, error) {
	var out []*entity.ComplianceTask
	for _, t := range m.sorted() {
		if t.CompanyID == companyID && t.IsOpen() {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTasks) UpdateStatus(_ context.Context, t *entity.ComplianceTask) error {
	if _, ok := m.byID[t.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *memTasks) sorted() []*entity.ComplianceTask {
	out := make([]*entity.ComplianceTask, 0, len(m.byID))
	for _, t := range m.byID {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].RuleCode < out[j].RuleCode
	})
	return out
}

func (m *memTasks) byCode(code string) []*entity.ComplianceTask {
	var out []*entity.ComplianceTask
	for _, t := range m.sorted() {
		if t.RuleCode == code {
			out = append(out, t)
		}
	}
	return out
}

type memCustomers struct{ list []*entity.Customer }

func (m *memCustomers) Create(_ context.Context, c *entity.Customer) error {
	m.list = append(m.list, c)
	return nil
}

func (m *memCustomers) GetByID(_ context.Context, companyID, id string) (*entity.Customer, error) {
	for _, c := range m.list {
		if c.CompanyID == companyID && c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCustomers) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Customer, int, error) {
	var all []*entity.Customer
	for _, c := range m.list {
		if c.CompanyID == companyID {
			all = append(all, c)
		}
	}
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (m *memCustomers) Update(_ context.Context, c *entity.Customer) error { return nil }

type memRegistrations struct{ list []*entity.Registration }

func (m *memRegistrations) Create(_ context.Context, r *entity.Registration) error {
	m.list = append(m.list, r)
	return nil
}

func (m *memRegistrations) ListByCustomer(_ context.Context, companyID, customerID string) ([]*entity.Registration, error) {
	var out []*entity.Registration
	for _, r := range m.list {
		if r.CompanyID == companyID && r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRegistrations) ListByCompany(_ context.Context, companyID string) ([]*entity.Registration, error) {
	var out []*entity.Registration
	for _, r := range m.list {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memCompanies struct{ list []*entity.Company }

func (m *memCompanies) Create(_ context.Context, c *entity.Company) error {
	m.list = append(m.list, c)
	return nil
}

func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	for _, c := range m.list {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCompanies) GetByPAN(_ context.Context, pan string) (*entity.Company, error) {
	return nil, nil
}

func (m *memCompanies) ListIDs(_ context.Context) ([]string, error) {
	var ids []string
	for _, c := range m.list {
		if c.Status == "active" {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

// ── PDF falso ─────────────────────────────────────────────────────────────────

type fakePDF struct {
	entries []tasks.CalendarEntry
	asOf    time.Time
}

func (f *fakePDF) GenerateCalendarPDF(_ context.Context, _ *entity.Company, _ *entity.Customer, asOf time.Time, entries []tasks.CalendarEntry) ([]byte, error) {
	f.entries = entries
	f.asOf = asOf
	return []byte("%PDF-1.3 fake"), nil
}
