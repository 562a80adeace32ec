// Package testutil provee repositorios en memoria y un TxRunner serializado
// para probar los motores de negocio sin base de datos. Los fakes devuelven
// copias (como haría un scan de fila) y las escrituras reemplazan por ID.
package testutil

import (
	"context"
	"sync"

	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/entity"
	"github.com/alfonsogomez05081995-dev/fijosdn-api/internal/domain/repository"
)

// ── Usuarios ──────────────────────────────────────────────────────────────────

// UserRepo fake en memoria de repository.UserRepository.
type UserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

// NewUserRepo construye el fake.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]*entity.User)}
}

func (r *UserRepo) Create(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *UserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// ── Activos ───────────────────────────────────────────────────────────────────

// AssetRepo fake en memoria de repository.AssetRepository.
type AssetRepo struct {
	mu     sync.Mutex
	assets map[string]*entity.Asset
}

// NewAssetRepo construye el fake.
func NewAssetRepo() *AssetRepo {
	return &AssetRepo{assets: make(map[string]*entity.Asset)}
}

// Seed inserta activos directamente, para montar escenarios.
func (r *AssetRepo) Seed(assets ...*entity.Asset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range assets {
		cp := *a
		r.assets[a.ID] = &cp
	}
}

func (r *AssetRepo) Create(asset *entity.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *asset
	r.assets[asset.ID] = &cp
	return nil
}

func (r *AssetRepo) GetByID(id string) (*entity.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *AssetRepo) Update(asset *entity.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assets[asset.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *asset
	r.assets[asset.ID] = &cp
	return nil
}

func (r *AssetRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.assets, id)
	return nil
}

func (r *AssetRepo) ListStock() ([]*entity.Asset, error) {
	return r.ListByStatus(entity.AssetEnStock)
}

func (r *AssetRepo) ListByStatus(status string) ([]*entity.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Asset
	for _, a := range r.assets {
		if a.Status == status {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *AssetRepo) ListByEmployee(employeeID string) ([]*entity.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Asset
	for _, a := range r.assets {
		if a.EmployeeID == employeeID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *AssetRepo) ListByEmployeeAndStatus(employeeID, status string) ([]*entity.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Asset
	for _, a := range r.assets {
		if a.EmployeeID == employeeID && a.Status == status {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *AssetRepo) GetStockByName(name string) (*entity.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assets {
		if a.Name == name && a.Status == entity.AssetEnStock {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *AssetRepo) GetStockByNameForUpdate(name string) (*entity.Asset, error) {
	// La exclusión la aporta el TxRunner serializado del test.
	return r.GetStockByName(name)
}

// ── Solicitudes de asignación ─────────────────────────────────────────────────

// AssignmentRepo fake en memoria de repository.AssignmentRequestRepository.
type AssignmentRepo struct {
	mu   sync.Mutex
	reqs map[string]*entity.AssignmentRequest
}

// NewAssignmentRepo construye el fake.
func NewAssignmentRepo() *AssignmentRepo {
	return &AssignmentRepo{reqs: make(map[string]*entity.AssignmentRequest)}
}

func (r *AssignmentRepo) Create(req *entity.AssignmentRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.reqs[req.ID] = &cp
	return nil
}

func (r *AssignmentRepo) GetByID(id string) (*entity.AssignmentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.reqs[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *AssignmentRepo) Update(req *entity.AssignmentRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reqs[req.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *req
	r.reqs[req.ID] = &cp
	return nil
}

func (r *AssignmentRepo) ListByStatus(status string) ([]*entity.AssignmentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.AssignmentRequest
	for _, req := range r.reqs {
		if req.Status == status {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *AssignmentRepo) ListByEmployee(employeeID string) ([]*entity.AssignmentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.AssignmentRequest
	for _, req := range r.reqs {
		if req.EmployeeID == employeeID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *AssignmentRepo) List(limit, offset int) ([]*entity.AssignmentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.AssignmentRequest
	for _, req := range r.reqs {
		cp := *req
		out = append(out, &cp)
	}
	return out, nil
}

// ── Solicitudes de reemplazo ──────────────────────────────────────────────────

// ReplacementRepo fake en memoria de repository.ReplacementRequestRepository.
type ReplacementRepo struct {
	mu   sync.Mutex
	reqs map[string]*entity.ReplacementRequest
}

// NewReplacementRepo construye el fake.
func NewReplacementRepo() *ReplacementRepo {
	return &ReplacementRepo{reqs: make(map[string]*entity.ReplacementRequest)}
}

func (r *ReplacementRepo) Create(req *entity.ReplacementRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Mismo respaldo que el índice único parcial de la base.
	if req.Status == entity.ReplacementPendiente {
		for _, existing := range r.reqs {
			if existing.AssetID == req.AssetID && existing.Status == entity.ReplacementPendiente {
				return domain.ErrConflict
			}
		}
	}
	cp := *req
	r.reqs[req.ID] = &cp
	return nil
}

func (r *ReplacementRepo) GetByID(id string) (*entity.ReplacementRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.reqs[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *ReplacementRepo) Update(req *entity.ReplacementRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reqs[req.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *req
	r.reqs[req.ID] = &cp
	return nil
}

func (r *ReplacementRepo) HasPendingForAsset(assetID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.reqs {
		if req.AssetID == assetID && req.Status == entity.ReplacementPendiente {
			return true, nil
		}
	}
	return false, nil
}

func (r *ReplacementRepo) ListByStatus(status string) ([]*entity.ReplacementRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ReplacementRequest
	for _, req := range r.reqs {
		if req.Status == status {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *ReplacementRepo) ListByEmployee(employeeID string) ([]*entity.ReplacementRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ReplacementRequest
	for _, req := range r.reqs {
		if req.EmployeeID == employeeID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── Procesos de devolución ────────────────────────────────────────────────────

// DevolutionRepo fake en memoria de repository.DevolutionProcessRepository.
type DevolutionRepo struct {
	mu    sync.Mutex
	procs map[string]*entity.DevolutionProcess
}

// NewDevolutionRepo construye el fake.
func NewDevolutionRepo() *DevolutionRepo {
	return &DevolutionRepo{procs: make(map[string]*entity.DevolutionProcess)}
}

func copyProcess(p *entity.DevolutionProcess) *entity.DevolutionProcess {
	cp := *p
	cp.Assets = make([]entity.DevolutionAsset, len(p.Assets))
	copy(cp.Assets, p.Assets)
	return &cp
}

func (r *DevolutionRepo) Create(proc *entity.DevolutionProcess) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.procs[proc.ID] = copyProcess(proc)
	return nil
}

func (r *DevolutionRepo) GetByID(id string) (*entity.DevolutionProcess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.procs[id]
	if !ok {
		return nil, nil
	}
	return copyProcess(p), nil
}

func (r *DevolutionRepo) GetByIDForUpdate(id string) (*entity.DevolutionProcess, error) {
	return r.GetByID(id)
}

func (r *DevolutionRepo) UpdateStatus(id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.procs[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	return nil
}

func (r *DevolutionRepo) MarkAssetVerified(processID, assetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.procs[processID]
	if !ok {
		return domain.ErrNotFound
	}
	for i := range p.Assets {
		if p.Assets[i].AssetID == assetID {
			p.Assets[i].Verified = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *DevolutionRepo) ListByEmployee(employeeID string) ([]*entity.DevolutionProcess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.DevolutionProcess
	for _, p := range r.procs {
		if p.EmployeeID == employeeID {
			out = append(out, copyProcess(p))
		}
	}
	return out, nil
}

func (r *DevolutionRepo) List(limit, offset int) ([]*entity.DevolutionProcess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.DevolutionProcess
	for _, p := range r.procs {
		out = append(out, copyProcess(p))
	}
	return out, nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// TxRunner fake que serializa las "transacciones" con un mutex: dos Run
// concurrentes nunca se entrelazan, igual que los bloqueos de fila en la
// implementación real.
type TxRunner struct {
	mu         sync.Mutex
	AssetRepo  *AssetRepo
	AssignRepo *AssignmentRepo
	ReplRepo   *ReplacementRepo
	ProcRepo   *DevolutionRepo
}

// NewTxRunner construye el fake con todos sus repositorios.
func NewTxRunner() *TxRunner {
	return &TxRunner{
		AssetRepo:  NewAssetRepo(),
		AssignRepo: NewAssignmentRepo(),
		ReplRepo:   NewReplacementRepo(),
		ProcRepo:   NewDevolutionRepo(),
	}
}

func (t *TxRunner) RunAssets(ctx context.Context, fn func(repository.AssetRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.AssetRepo)
}

func (t *TxRunner) RunRequests(ctx context.Context, fn func(
	repository.AssetRepository,
	repository.AssignmentRequestRepository,
	repository.ReplacementRequestRepository,
) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.AssetRepo, t.AssignRepo, t.ReplRepo)
}

func (t *TxRunner) RunDevolution(ctx context.Context, fn func(
	repository.AssetRepository,
	repository.DevolutionProcessRepository,
) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.AssetRepo, t.ProcRepo)
}

// ── Evidencias ────────────────────────────────────────────────────────────────

// EvidenceStore fake del object store: registra las subidas y devuelve una
// URL determinista, o falla si Err está fijado.
type EvidenceStore struct {
	mu      sync.Mutex
	Err     error
	Uploads []string
}

// NewEvidenceStore construye el fake.
func NewEvidenceStore() *EvidenceStore {
	return &EvidenceStore{}
}

func (s *EvidenceStore) Upload(ctx context.Context, data []byte, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	s.Uploads = append(s.Uploads, name)
	return "https://storage.test/evidencias/" + name, nil
}

// ── Actores ───────────────────────────────────────────────────────────────────

// Actores listos para usar en los tests de los motores.
var (
	Master = &entity.Actor{
		ID: "master-1", Name: "Marta Master", Email: "marta@fijosdn.test",
		Role: entity.RoleMaster, Status: entity.UserStatusActivo,
	}
	Logistica = &entity.Actor{
		ID: "logi-1", Name: "Luis Logística", Email: "luis@fijosdn.test",
		Role: entity.RoleLogistica, Status: entity.UserStatusActivo,
	}
	Empleado = &entity.Actor{
		ID: "emp-1", Name: "Elena Empleada", Email: "elena@fijosdn.test",
		Role: entity.RoleEmpleado, Status: entity.UserStatusActivo,
	}
)
