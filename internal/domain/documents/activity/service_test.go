package activity

import (
	"context"
	"testing"
	"time"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain"
	"atelierdesk/internal/domain/audit"
	"atelierdesk/internal/domain/registers/stock"
	"atelierdesk/pkg/numerator"
)

// --- In-memory fakes ---

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeActivityRepo struct {
	created []*Activity
}

func (r *fakeActivityRepo) Create(ctx context.Context, a *Activity) error {
	r.created = append(r.created, a)
	return nil
}

func (r *fakeActivityRepo) GetByID(ctx context.Context, activityID id.ActivityID) (*Activity, error) {
	for _, a := range r.created {
		if a.ID == activityID {
			return a, nil
		}
	}
	return nil, apperror.NewNotFound("activity", activityID.String())
}

func (r *fakeActivityRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Activity], error) {
	return domain.ListResult[*Activity]{Items: r.created, TotalCount: int64(len(r.created))}, nil
}

func (r *fakeActivityRepo) ListInRange(ctx context.Context, from, to time.Time) ([]*Activity, error) {
	return r.created, nil
}

type fakeStockRepo struct {
	movements []*stock.Movement
	deltas    map[id.ProductID]types.Quantity
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{deltas: make(map[id.ProductID]types.Quantity)}
}

func (r *fakeStockRepo) CreateMovement(ctx context.Context, m *stock.Movement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeStockRepo) History(ctx context.Context, productID id.ProductID, filter stock.MovementFilter) ([]*stock.Movement, error) {
	return r.movements, nil
}

func (r *fakeStockRepo) ApplyDelta(ctx context.Context, productID id.ProductID, delta types.Quantity) (types.Quantity, error) {
	next := r.deltas[productID] + delta
	if next.IsNegative() {
		next = 0
	}
	r.deltas[productID] = next
	return next, nil
}

func (r *fakeStockRepo) SumByProduct(ctx context.Context, productID id.ProductID) (types.Quantity, error) {
	var sum types.Quantity
	for _, m := range r.movements {
		if m.ProductID == productID {
			sum += m.Quantity
		}
	}
	return sum, nil
}

type fakeAuditor struct {
	entries []audit.Entry
}

func (a *fakeAuditor) Record(ctx context.Context, entry audit.Entry) error {
	a.entries = append(a.entries, entry)
	return nil
}

func newTestService() (*Service, *fakeActivityRepo, *fakeStockRepo, *fakeAuditor) {
	repo := &fakeActivityRepo{}
	stockRepo := newFakeStockRepo()
	auditor := &fakeAuditor{}
	svc := NewService(repo, stockRepo, &numerator.MockGenerator{}, fakeTxManager{}, auditor)
	return svc, repo, stockRepo, auditor
}

// --- Tests ---

func TestCreate_SaleProducesSaleMovement(t *testing.T) {
	svc, repo, stockRepo, auditor := newTestService()
	ctx := context.Background()
	productID := id.New()

	a := NewActivity(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), TypeSale)
	a.ProductID = &productID
	a.Quantity = types.NewQuantityFromInt(-5)
	a.Amount = types.MustMoney("99.95")

	if err := svc.Create(ctx, a); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("activities created = %d, want 1", len(repo.created))
	}
	if a.Number == "" {
		t.Error("journal number was not assigned")
	}

	if len(stockRepo.movements) != 1 {
		t.Fatalf("movements created = %d, want 1", len(stockRepo.movements))
	}
	m := stockRepo.movements[0]
	if m.Source != stock.SourceSale {
		t.Errorf("source = %s, want SALE", m.Source)
	}
	if m.Quantity != a.Quantity {
		t.Errorf("movement quantity = %s, want %s", m.Quantity.String(), a.Quantity.String())
	}
	if m.ActivityID == nil || *m.ActivityID != a.ID {
		t.Error("movement is not linked to the activity")
	}

	if len(auditor.entries) != 1 {
		t.Errorf("audit entries = %d, want 1", len(auditor.entries))
	}
}

func TestCreate_SourceMapping(t *testing.T) {
	tests := []struct {
		activityType Type
		quantity     int64
		wantSource   stock.Source
	}{
		{TypeCreation, 3, stock.SourceCreation},
		{TypeSale, -2, stock.SourceSale},
		{TypeStockCorrection, -1, stock.SourceInventoryAdjustment},
	}

	for _, tt := range tests {
		t.Run(string(tt.activityType), func(t *testing.T) {
			svc, _, stockRepo, _ := newTestService()
			productID := id.New()

			a := NewActivity(time.Now().UTC(), tt.activityType)
			a.ProductID = &productID
			a.Quantity = types.NewQuantityFromInt(tt.quantity)
			if tt.activityType == TypeSale {
				a.Amount = types.MustMoney("10")
			}

			if err := svc.Create(context.Background(), a); err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if len(stockRepo.movements) != 1 {
				t.Fatalf("movements = %d, want 1", len(stockRepo.movements))
			}
			if got := stockRepo.movements[0].Source; got != tt.wantSource {
				t.Errorf("source = %s, want %s", got, tt.wantSource)
			}
		})
	}
}

func TestCreate_OtherMovesNoStock(t *testing.T) {
	svc, repo, stockRepo, _ := newTestService()

	a := NewActivity(time.Now().UTC(), TypeOther)
	a.Amount = types.MustMoney("25")

	if err := svc.Create(context.Background(), a); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("activities = %d, want 1", len(repo.created))
	}
	if len(stockRepo.movements) != 0 {
		t.Errorf("movements = %d, want 0", len(stockRepo.movements))
	}
}

func TestCreate_RejectsInvalidActivity(t *testing.T) {
	svc, repo, _, _ := newTestService()

	// Sale without a product violates the product-requirement rule.
	a := NewActivity(time.Now().UTC(), TypeSale)
	a.Quantity = types.NewQuantityFromInt(-5)
	a.Amount = types.MustMoney("10")

	if err := svc.Create(context.Background(), a); err == nil {
		t.Fatal("expected validation error")
	}
	if len(repo.created) != 0 {
		t.Error("invalid activity was persisted")
	}
}

func TestCreate_AppliesStockDelta(t *testing.T) {
	svc, _, stockRepo, _ := newTestService()
	productID := id.New()

	creation := NewActivity(time.Now().UTC(), TypeCreation)
	creation.ProductID = &productID
	creation.Quantity = types.NewQuantityFromInt(10)
	if err := svc.Create(context.Background(), creation); err != nil {
		t.Fatalf("creation failed: %v", err)
	}

	sale := NewActivity(time.Now().UTC(), TypeSale)
	sale.ProductID = &productID
	sale.Quantity = types.NewQuantityFromInt(-4)
	sale.Amount = types.MustMoney("80")
	if err := svc.Create(context.Background(), sale); err != nil {
		t.Fatalf("sale failed: %v", err)
	}

	if got := stockRepo.deltas[productID]; got.Float64() != 6 {
		t.Errorf("stock = %v, want 6", got.Float64())
	}
}
