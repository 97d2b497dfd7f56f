package service

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"sort"
	"sync"

	"safegrowth-backend/app/model"
	"safegrowth-backend/app/repository"
	"safegrowth-backend/storage"

	"github.com/sirupsen/logrus"
)

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// ---------- users ----------

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  []*model.User

	// beforeCreate dipanggil sebelum insert; dipakai untuk mensimulasikan balapan.
	beforeCreate func()
	findErr      error
}

func (r *fakeUserRepo) FindByAnonymousID(_ context.Context, anonymousID string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.AnonymousID != nil && *u.AnonymousID == anonymousID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) CreateIfAbsent(_ context.Context, user *model.User) (bool, error) {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.AnonymousID != nil && user.AnonymousID != nil && *u.AnonymousID == *user.AnonymousID {
			return false, nil
		}
	}
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.users = append(r.users, &cp)
	return true, nil
}

func (r *fakeUserRepo) FindAdminByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Role == model.RoleAdmin && u.Username != nil && *u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// ---------- reports ----------

type fakeReportRepo struct {
	mu         sync.Mutex
	nextID     uint
	reports    map[uint]*model.Report
	validation *fakeValidationRepo
	createErr  error
	findAll    int
}

func newFakeReportRepo(v *fakeValidationRepo) *fakeReportRepo {
	return &fakeReportRepo{reports: map[uint]*model.Report{}, validation: v}
}

func (r *fakeReportRepo) FindAll(_ context.Context, filter model.ReportFilter) ([]model.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findAll++
	out := []model.Report{}
	for _, rep := range r.reports {
		if filter.Status != "" && rep.Status != filter.Status {
			continue
		}
		if filter.Category != "" && rep.Category != filter.Category {
			continue
		}
		out = append(out, *rep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeReportRepo) FindByID(_ context.Context, id uint) (*model.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rep
	return &cp, nil
}

func (r *fakeReportRepo) Create(_ context.Context, report *model.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	report.ID = r.nextID
	cp := *report
	r.reports[report.ID] = &cp
	return nil
}

func (r *fakeReportRepo) UpdateStatus(_ context.Context, id uint, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.reports[id]
	if !ok {
		return 0, nil
	}
	rep.Status = status
	return 1, nil
}

func (r *fakeReportRepo) DeleteWithValidations(_ context.Context, id uint) (int64, error) {
	if r.validation != nil {
		r.validation.deleteByReport(id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reports[id]; !ok {
		return 0, nil
	}
	delete(r.reports, id)
	return 1, nil
}

func (r *fakeReportRepo) CountBy(_ context.Context, column string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]int64{}
	for _, rep := range r.reports {
		switch column {
		case "status":
			out[rep.Status]++
		case "category":
			out[rep.Category]++
		default:
			return nil, errors.New("invalid column")
		}
	}
	return out, nil
}

// ---------- validations ----------

type fakeValidationRepo struct {
	mu    sync.Mutex
	votes []model.Validation

	// skipExists mensimulasikan dua request yang sama-sama lolos Exists.
	skipExists bool
}

func (r *fakeValidationRepo) Exists(_ context.Context, reportID uint, tagType, userIdentifier string) (bool, error) {
	if r.skipExists {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.has(reportID, tagType, userIdentifier), nil
}

func (r *fakeValidationRepo) has(reportID uint, tagType, userIdentifier string) bool {
	for _, v := range r.votes {
		if v.ReportID == reportID && v.TagType == tagType && v.UserIdentifier == userIdentifier {
			return true
		}
	}
	return false
}

func (r *fakeValidationRepo) Create(_ context.Context, v *model.Validation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.has(v.ReportID, v.TagType, v.UserIdentifier) {
		return repository.ErrDuplicate
	}
	v.ID = uint(len(r.votes) + 1)
	r.votes = append(r.votes, *v)
	return nil
}

func (r *fakeValidationRepo) CountByReportIDs(_ context.Context, reportIDs []uint) ([]repository.TagCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[uint]bool{}
	for _, id := range reportIDs {
		want[id] = true
	}
	type key struct {
		id  uint
		tag string
	}
	agg := map[key]int64{}
	for _, v := range r.votes {
		if want[v.ReportID] {
			agg[key{v.ReportID, v.TagType}]++
		}
	}
	out := []repository.TagCount{}
	for k, c := range agg {
		out = append(out, repository.TagCount{ReportID: k.id, TagType: k.tag, Count: c})
	}
	return out, nil
}

func (r *fakeValidationRepo) CountAll(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.votes)), nil
}

func (r *fakeValidationRepo) deleteByReport(id uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.votes[:0]
	for _, v := range r.votes {
		if v.ReportID != id {
			kept = append(kept, v)
		}
	}
	r.votes = kept
}

func (r *fakeValidationRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.votes)
}

// ---------- activity ----------

type fakeActivityRepo struct {
	mu      sync.Mutex
	records []model.ReportActivity
	err     error
}

func (r *fakeActivityRepo) Enabled() bool { return true }

func (r *fakeActivityRepo) Record(_ context.Context, a *model.ReportActivity) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *a)
	return nil
}

func (r *fakeActivityRepo) FindByReportID(_ context.Context, reportID uint) ([]model.ReportActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.ReportActivity{}
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].ReportID == reportID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) CountByAction(context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]int64{}
	for _, a := range r.records {
		out[a.Action]++
	}
	return out, nil
}

func (r *fakeActivityRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.records))
	for _, a := range r.records {
		out = append(out, a.Action)
	}
	return out
}

// ---------- media ----------

type fakeMedia struct {
	mu      sync.Mutex
	files   map[string]bool
	saved   int
	saveErr error
}

func newFakeMedia() *fakeMedia { return &fakeMedia{files: map[string]bool{}} }

func (m *fakeMedia) Save(fh *multipart.FileHeader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved++
	p := "uploads/img-" + string(rune('a'+m.saved)) + filepath.Ext(fh.Filename)
	m.files[p] = true
	return p, nil
}

func (m *fakeMedia) Delete(relPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, relPath)
	return nil
}

func (m *fakeMedia) Exists(relPath string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.files[relPath]
}

func (m *fakeMedia) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

var _ MediaStore = (*storage.MediaStore)(nil)

// ---------- cache ----------

type cacheKey struct {
	gen    int64
	filter model.ReportFilter
}

// fakeCache meniru cache Redis: entri per generasi, Invalidate hanya menaikkan generasi.
type fakeCache struct {
	mu          sync.Mutex
	gen         int64
	entries     map[cacheKey][]model.ReportView
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[cacheKey][]model.ReportView{}}
}

func (c *fakeCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *fakeCache) Get(_ context.Context, gen int64, f model.ReportFilter) ([]model.ReportView, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[cacheKey{gen, f}]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, gen int64, f model.ReportFilter, views []model.ReportView) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{gen, f}] = views
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.invalidated++
	return nil
}
