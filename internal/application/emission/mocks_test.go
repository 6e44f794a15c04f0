package emission

import (
	"context"
	"sync"
	"time"

	"github.com/gesielr/guiasMEIlast/internal/domain"
	"github.com/gesielr/guiasMEIlast/internal/domain/entity"
	"github.com/gesielr/guiasMEIlast/internal/domain/repository"
)

// Dublês de teste em memória compartilhados pelo pacote.

type fakeSampler struct{ hit bool }

func (f fakeSampler) Hit(float64) bool { return f.hit }

type fakeAuthority struct {
	mu      sync.Mutex
	result  *AuthorityResult
	err     error
	delay   time.Duration
	calls   int
	lastReq AuthorityRequest
}

func (f *fakeAuthority) Emit(ctx context.Context, req AuthorityRequest) (*AuthorityResult, error) {
	f.mu.Lock()
	f.calls++
	f.lastReq = req
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeAuthority) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeEmissionRepo struct {
	mu        sync.Mutex
	emissions map[string]*entity.Emission
	createErr error
	validated map[string]time.Time
}

func newFakeEmissionRepo() *fakeEmissionRepo {
	return &fakeEmissionRepo{
		emissions: make(map[string]*entity.Emission),
		validated: make(map[string]time.Time),
	}
}

func (r *fakeEmissionRepo) Create(_ context.Context, e *entity.Emission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	cp := *e
	r.emissions[e.ID] = &cp
	return nil
}

func (r *fakeEmissionRepo) GetByID(_ context.Context, id string) (*entity.Emission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.emissions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEmissionRepo) List(_ context.Context, f repository.EmissionFilter) ([]*entity.Emission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Emission
	for _, e := range r.emissions {
		if f.UserID != "" && e.UserID != f.UserID {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeEmissionRepo) MarkValidated(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validated[id] = at
	if e, ok := r.emissions[id]; ok {
		e.ValidatedByAuthority = true
		e.ValidatedAt = &at
		e.PendingValidation = false
	}
	return nil
}

func (r *fakeEmissionRepo) wasValidated(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.validated[id]
	return ok
}

type fakeDivergenceRepo struct {
	mu          sync.Mutex
	divergences map[string]*entity.Divergence // chave: EmissionID
	resolved    map[string]bool
}

func newFakeDivergenceRepo() *fakeDivergenceRepo {
	return &fakeDivergenceRepo{
		divergences: make(map[string]*entity.Divergence),
		resolved:    make(map[string]bool),
	}
}

func (r *fakeDivergenceRepo) CreateIfAbsent(_ context.Context, d *entity.Divergence) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.divergences[d.EmissionID]; ok {
		return false, nil
	}
	cp := *d
	r.divergences[d.EmissionID] = &cp
	return true, nil
}

func (r *fakeDivergenceRepo) GetByEmissionID(_ context.Context, emissionID string) (*entity.Divergence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.divergences[emissionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDivergenceRepo) ListUnresolved(_ context.Context, _, _ int) ([]*entity.Divergence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Divergence
	for _, d := range r.divergences {
		if !d.Resolved {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDivergenceRepo) MarkResolved(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved[id] = true
	return nil
}

func (r *fakeDivergenceRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.divergences)
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*entity.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) GetByEmail(_ context.Context, email string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

type fakeRenderer struct{ err error }

func (f fakeRenderer) Render(GuideDocument) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

type recordingChannel struct {
	mu     sync.Mutex
	name   string
	err    error
	delay  time.Duration
	alerts []DivergenceAlert
}

func (c *recordingChannel) Name() string { return c.name }

func (c *recordingChannel) Notify(ctx context.Context, alert DivergenceAlert) error {
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.mu.Lock()
	c.alerts = append(c.alerts, alert)
	c.mu.Unlock()
	return c.err
}

func (c *recordingChannel) received() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.alerts)
}
