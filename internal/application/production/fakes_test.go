package production

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/pcbstock-api/internal/domain"
	"github.com/jhoicas/pcbstock-api/internal/domain/entity"
	"github.com/jhoicas/pcbstock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: mismos contratos que los repositorios de PostgreSQL,
// incluida la semántica de rollback del TxRunner.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	components  map[string]*entity.Component
	pcbs        map[string]*entity.PCB
	bom         map[string][]*entity.BOMLine // por pcbID
	entries     []*entity.ProductionEntry
	consumption []*entity.ConsumptionRecord
	triggers    map[string]*entity.ProcurementTrigger
	outbox      []*entity.ProcurementOutboxEntry
}

func newMemStore() *memStore {
	return &memStore{
		components: make(map[string]*entity.Component),
		pcbs:       make(map[string]*entity.PCB),
		bom:        make(map[string][]*entity.BOMLine),
		triggers:   make(map[string]*entity.ProcurementTrigger),
	}
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for id, c := range s.components {
		cc := *c
		cp.components[id] = &cc
	}
	for id, p := range s.pcbs {
		pp := *p
		cp.pcbs[id] = &pp
	}
	for id, lines := range s.bom {
		cp.bom[id] = append([]*entity.BOMLine(nil), lines...)
	}
	cp.entries = append([]*entity.ProductionEntry(nil), s.entries...)
	cp.consumption = append([]*entity.ConsumptionRecord(nil), s.consumption...)
	for id, t := range s.triggers {
		tt := *t
		cp.triggers[id] = &tt
	}
	cp.outbox = append([]*entity.ProcurementOutboxEntry(nil), s.outbox...)
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.components = from.components
	s.pcbs = from.pcbs
	s.bom = from.bom
	s.entries = from.entries
	s.consumption = from.consumption
	s.triggers = from.triggers
	s.outbox = from.outbox
}

// memComponentRepo fake de ComponentRepository.
type memComponentRepo struct{ s *memStore }

func (r *memComponentRepo) Create(c *entity.Component) error {
	for _, existing := range r.s.components {
		if existing.PartNumber == c.PartNumber {
			return domain.ErrDuplicate
		}
	}
	cc := *c
	r.s.components[c.ID] = &cc
	return nil
}

func (r *memComponentRepo) GetByID(id string) (*entity.Component, error) {
	c, ok := r.s.components[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *memComponentRepo) GetByPartNumber(partNumber string) (*entity.Component, error) {
	for _, c := range r.s.components {
		if c.PartNumber == partNumber {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

func (r *memComponentRepo) List(filter repository.ComponentFilter) ([]*entity.Component, error) {
	var out []*entity.Component
	for _, c := range r.s.components {
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(c.PartNumber), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.LowStockOnly && !c.IsLowStock() {
			continue
		}
		cc := *c
		out = append(out, &cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memComponentRepo) Update(c *entity.Component) error {
	if _, ok := r.s.components[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cc := *c
	r.s.components[c.ID] = &cc
	return nil
}

func (r *memComponentRepo) Delete(id string) error {
	if _, ok := r.s.components[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.components, id)
	return nil
}

func (r *memComponentRepo) GetForUpdate(id string) (*entity.Component, error) {
	return r.GetByID(id)
}

func (r *memComponentRepo) SetStock(id string, stock int) error {
	c, ok := r.s.components[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.CurrentStock = stock
	return nil
}

// memPCBRepo fake de PCBRepository.
type memPCBRepo struct{ s *memStore }

func (r *memPCBRepo) Create(p *entity.PCB) error {
	pp := *p
	r.s.pcbs[p.ID] = &pp
	return nil
}

func (r *memPCBRepo) GetByID(id string) (*entity.PCB, error) {
	p, ok := r.s.pcbs[id]
	if !ok {
		return nil, nil
	}
	pp := *p
	return &pp, nil
}

func (r *memPCBRepo) List() ([]*entity.PCB, error) {
	var out []*entity.PCB
	for _, p := range r.s.pcbs {
		pp := *p
		out = append(out, &pp)
	}
	return out, nil
}

func (r *memPCBRepo) Update(p *entity.PCB) error {
	if _, ok := r.s.pcbs[p.ID]; !ok {
		return domain.ErrNotFound
	}
	pp := *p
	r.s.pcbs[p.ID] = &pp
	return nil
}

func (r *memPCBRepo) Delete(id string) error {
	delete(r.s.pcbs, id)
	delete(r.s.bom, id)
	return nil
}

// GetBOM rellena identidad y stock actuales del primario y del alterno, como
// hace el join en la BD.
func (r *memPCBRepo) GetBOM(pcbID string) ([]*entity.BOMLine, error) {
	var out []*entity.BOMLine
	for _, line := range r.s.bom[pcbID] {
		l := *line
		if c, ok := r.s.components[l.ComponentID]; ok {
			l.ComponentName = c.Name
			l.PartNumber = c.PartNumber
			l.CurrentStock = c.CurrentStock
		}
		if l.AlternativeComponentID != "" {
			if alt, ok := r.s.components[l.AlternativeComponentID]; ok {
				l.AlternativeName = alt.Name
				l.AlternativePartNumber = alt.PartNumber
				l.AlternativeStock = alt.CurrentStock
			}
		}
		out = append(out, &l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ComponentName < out[j].ComponentName })
	return out, nil
}

func (r *memPCBRepo) UpsertBOMLine(line *entity.BOMLine) error {
	lines := r.s.bom[line.PCBID]
	for i, existing := range lines {
		if existing.ComponentID == line.ComponentID {
			ll := *line
			lines[i] = &ll
			return nil
		}
	}
	ll := *line
	r.s.bom[line.PCBID] = append(lines, &ll)
	return nil
}

func (r *memPCBRepo) DeleteBOMLine(pcbID, componentID string) error {
	lines := r.s.bom[pcbID]
	for i, existing := range lines {
		if existing.ComponentID == componentID {
			r.s.bom[pcbID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// memProductionRepo fake de ProductionRepository.
type memProductionRepo struct{ s *memStore }

func (r *memProductionRepo) CreateEntry(e *entity.ProductionEntry) error {
	ee := *e
	r.s.entries = append(r.s.entries, &ee)
	return nil
}

func (r *memProductionRepo) AppendConsumption(rec *entity.ConsumptionRecord) error {
	rr := *rec
	r.s.consumption = append(r.s.consumption, &rr)
	return nil
}

func (r *memProductionRepo) ListEntries(limit int) ([]*entity.ProductionEntry, error) {
	out := append([]*entity.ProductionEntry(nil), r.s.entries...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memProductionRepo) ConsumptionByEntry(productionEntryID string) ([]*entity.ConsumptionRecord, error) {
	var out []*entity.ConsumptionRecord
	for _, rec := range r.s.consumption {
		if rec.ProductionEntryID == productionEntryID {
			rr := *rec
			out = append(out, &rr)
		}
	}
	return out, nil
}

// memProcurementRepo fake de ProcurementRepository.
type memProcurementRepo struct{ s *memStore }

func (r *memProcurementRepo) CreateTrigger(t *entity.ProcurementTrigger) error {
	for _, existing := range r.s.triggers {
		if existing.ComponentID == t.ComponentID && existing.Status == entity.TriggerPending {
			return domain.ErrDuplicate
		}
	}
	tt := *t
	r.s.triggers[t.ID] = &tt
	return nil
}

func (r *memProcurementRepo) HasPending(componentID string) (bool, error) {
	for _, t := range r.s.triggers {
		if t.ComponentID == componentID && t.Status == entity.TriggerPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProcurementRepo) GetPendingForUpdate(id string) (*entity.ProcurementTrigger, error) {
	t, ok := r.s.triggers[id]
	if !ok || t.Status != entity.TriggerPending {
		return nil, nil
	}
	tt := *t
	return &tt, nil
}

func (r *memProcurementRepo) MarkResolved(t *entity.ProcurementTrigger) error {
	if _, ok := r.s.triggers[t.ID]; !ok {
		return domain.ErrNotFound
	}
	tt := *t
	r.s.triggers[t.ID] = &tt
	return nil
}

func (r *memProcurementRepo) List() ([]*entity.ProcurementTrigger, error) {
	var out []*entity.ProcurementTrigger
	for _, t := range r.s.triggers {
		tt := *t
		out = append(out, &tt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memProcurementRepo) GetByID(id string) (*entity.ProcurementTrigger, error) {
	t, ok := r.s.triggers[id]
	if !ok {
		return nil, nil
	}
	tt := *t
	return &tt, nil
}

func (r *memProcurementRepo) EnqueueOutbox(e *entity.ProcurementOutboxEntry) error {
	ee := *e
	r.s.outbox = append(r.s.outbox, &ee)
	return nil
}

func (r *memProcurementRepo) PendingOutbox(limit int) ([]*entity.ProcurementOutboxEntry, error) {
	var out []*entity.ProcurementOutboxEntry
	for _, e := range r.s.outbox {
		if e.ProcessedAt == nil {
			ee := *e
			out = append(out, &ee)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memProcurementRepo) MarkOutboxProcessed(id string) error {
	for _, e := range r.s.outbox {
		if e.ID == id {
			now := time.Now()
			e.ProcessedAt = &now
			e.Attempts++
			e.LastError = ""
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memProcurementRepo) MarkOutboxFailed(id string, lastError string) error {
	for _, e := range r.s.outbox {
		if e.ID == id {
			e.Attempts++
			e.LastError = lastError
			return nil
		}
	}
	return domain.ErrNotFound
}

// memTxRunner aplica la semántica todo-o-nada del TxRunner real: si fn falla,
// el store vuelve al snapshot previo.
type memTxRunner struct{ s *memStore }

func (tr *memTxRunner) Run(ctx context.Context, fn func(
	componentRepo repository.ComponentRepository,
	pcbRepo repository.PCBRepository,
	productionRepo repository.ProductionRepository,
	procurementRepo repository.ProcurementRepository,
) error) error {
	snap := tr.s.snapshot()
	err := fn(
		&memComponentRepo{s: tr.s},
		&memPCBRepo{s: tr.s},
		&memProductionRepo{s: tr.s},
		&memProcurementRepo{s: tr.s},
	)
	if err != nil {
		tr.s.restore(snap)
		return err
	}
	return nil
}

// fakeNotifier cuenta los kicks post-commit.
type fakeNotifier struct{ kicks int }

func (n *fakeNotifier) Kick() { n.kicks++ }
