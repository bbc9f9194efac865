package records

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/refresquitos/backend/internal/domain/costing"
	"github.com/refresquitos/backend/internal/domain/payroll"
	"github.com/refresquitos/backend/internal/domain/shared"
	"github.com/refresquitos/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
)

// RecordService provides application-level CRUD for the four record
// ledgers: production, sales, expenses and absences. Every mutation
// invalidates the report cache, since all reports are derived by replay.
type RecordService struct {
	productionRepo costing.ProductionRecordRepository
	saleRepo       costing.SaleRecordRepository
	expenseRepo    costing.ExpenseRecordRepository
	absenceRepo    payroll.AbsenceRecordRepository
	reportCache    cache.ReportCache
	rules          costing.Rules
}

// NewRecordService creates a new RecordService
func NewRecordService(
	productionRepo costing.ProductionRecordRepository,
	saleRepo costing.SaleRecordRepository,
	expenseRepo costing.ExpenseRecordRepository,
	absenceRepo payroll.AbsenceRecordRepository,
	reportCache cache.ReportCache,
	rules costing.Rules,
) *RecordService {
	return &RecordService{
		productionRepo: productionRepo,
		saleRepo:       saleRepo,
		expenseRepo:    expenseRepo,
		absenceRepo:    absenceRepo,
		reportCache:    reportCache,
		rules:          rules,
	}
}

// invalidateReports drops all cached reports after a mutation. A failed
// invalidation is not fatal: cached reports expire within the TTL anyway.
func (s *RecordService) invalidateReports(ctx context.Context) {
	_ = s.reportCache.InvalidateAll(ctx)
}

// ===================== Production Records =====================

// MaterialCostInput is one raw-material line in a production request
type MaterialCostInput struct {
	Name string          `json:"name" binding:"required"`
	Cost decimal.Decimal `json:"cost" binding:"required"`
}

// CreateProductionRequest represents a request to record a production run
type CreateProductionRequest struct {
	Date            time.Time           `json:"date" binding:"required"`
	Product         string              `json:"product" binding:"required"`
	Quantity        int64               `json:"quantity" binding:"required"`
	MaterialCosts   []MaterialCostInput `json:"material_costs"`
	DirectLaborCost decimal.Decimal     `json:"direct_labor_cost"`
	IndirectCosts   decimal.Decimal     `json:"indirect_costs"`
}

// ProductionResponse represents a production record in API responses
type ProductionResponse struct {
	ID              uuid.UUID              `json:"id"`
	Date            time.Time              `json:"date"`
	Product         string                 `json:"product"`
	Quantity        int64                  `json:"quantity"`
	MaterialCosts   costing.MaterialCosts  `json:"material_costs"`
	DirectLaborCost decimal.Decimal        `json:"direct_labor_cost"`
	IndirectCosts   decimal.Decimal        `json:"indirect_costs"`
	TotalCost       decimal.Decimal        `json:"total_cost"`
	CostPerUnit     decimal.Decimal        `json:"cost_per_unit"`
	CreatedAt       time.Time              `json:"created_at"`
}

func toProductionResponse(r *costing.ProductionRecord) *ProductionResponse {
	return &ProductionResponse{
		ID:              r.ID,
		Date:            r.Date,
		Product:         r.Product.String(),
		Quantity:        r.Quantity,
		MaterialCosts:   r.MaterialCosts,
		DirectLaborCost: r.DirectLaborCost,
		IndirectCosts:   r.IndirectCosts,
		TotalCost:       r.TotalCost,
		CostPerUnit:     r.CostPerUnit,
		CreatedAt:       r.CreatedAt,
	}
}

// CreateProduction records a production run
func (s *RecordService) CreateProduction(ctx context.Context, req CreateProductionRequest) (*ProductionResponse, error) {
	product := costing.Product(req.Product)
	if !product.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Unknown product line")
	}

	materials := make(costing.MaterialCosts, 0, len(req.MaterialCosts))
	for _, input := range req.MaterialCosts {
		materials = append(materials, costing.MaterialCost{Name: input.Name, Cost: input.Cost})
	}

	record, err := costing.NewProductionRecord(req.Date, product, req.Quantity,
		materials, req.DirectLaborCost, req.IndirectCosts)
	if err != nil {
		return nil, err
	}

	if err := s.productionRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	return toProductionResponse(record), nil
}

// ListProductions returns all production records ordered by date
func (s *RecordService) ListProductions(ctx context.Context) ([]*ProductionResponse, error) {
	records, err := s.productionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*ProductionResponse, len(records))
	for i, record := range records {
		responses[i] = toProductionResponse(record)
	}
	return responses, nil
}

// GetProduction returns one production record
func (s *RecordService) GetProduction(ctx context.Context, id uuid.UUID) (*ProductionResponse, error) {
	record, err := s.productionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductionResponse(record), nil
}

// DeleteProduction removes a production record
func (s *RecordService) DeleteProduction(ctx context.Context, id uuid.UUID) error {
	if err := s.productionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	return nil
}

// ===================== Sale Records =====================

// CreateSaleRequest represents a request to record a sale. The amount is
// derived from the configured price list, never taken from the client.
type CreateSaleRequest struct {
	Date     time.Time `json:"date" binding:"required"`
	Product  string    `json:"product" binding:"required"`
	Quantity int64     `json:"quantity" binding:"required"`
	Channel  string    `json:"channel" binding:"required"`
	Employee string    `json:"employee"`
}

// SaleResponse represents a sale record in API responses
type SaleResponse struct {
	ID        uuid.UUID       `json:"id"`
	Date      time.Time       `json:"date"`
	Product   string          `json:"product"`
	Quantity  int64           `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
	Channel   string          `json:"channel"`
	Employee  string          `json:"employee,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func toSaleResponse(s *costing.SaleRecord) *SaleResponse {
	return &SaleResponse{
		ID:        s.ID,
		Date:      s.Date,
		Product:   s.Product.String(),
		Quantity:  s.Quantity,
		Amount:    s.Amount,
		Channel:   string(s.Channel),
		Employee:  s.Employee,
		CreatedAt: s.CreatedAt,
	}
}

// CreateSale records a sale. Selling more than the current stock is
// allowed; stock checks are advisory and belong to the simulation
// endpoint.
func (s *RecordService) CreateSale(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	product := costing.Product(req.Product)
	if !product.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Unknown product line")
	}
	channel := costing.SaleChannel(req.Channel)
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Unknown sale channel")
	}
	if channel == costing.ChannelEmployee && req.Employee == "" {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee sales require an employee")
	}

	sale, err := costing.NewSaleRecord(req.Date, product, req.Quantity, channel, req.Employee, s.rules.Prices)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	return toSaleResponse(sale), nil
}

// ListSales returns all sale records ordered by date, optionally scoped
// to one employee.
func (s *RecordService) ListSales(ctx context.Context, employee string) ([]*SaleResponse, error) {
	var (
		sales []*costing.SaleRecord
		err   error
	)
	if employee != "" {
		sales, err = s.saleRepo.FindByEmployee(ctx, employee)
	} else {
		sales, err = s.saleRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	responses := make([]*SaleResponse, len(sales))
	for i, sale := range sales {
		responses[i] = toSaleResponse(sale)
	}
	return responses, nil
}

// GetSale returns one sale record
func (s *RecordService) GetSale(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// DeleteSale removes a sale record
func (s *RecordService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	if err := s.saleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	return nil
}

// ===================== Expense Records =====================

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Name     string          `json:"name" binding:"required"`
	Category string          `json:"category" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Date     time.Time       `json:"date" binding:"required"`
}

// ExpenseResponse represents an expense record in API responses
type ExpenseResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Amount           decimal.Decimal `json:"amount"`
	Date             time.Time       `json:"date"`
	IsProductionCost bool            `json:"is_production_cost"`
	CreatedAt        time.Time       `json:"created_at"`
}

func toExpenseResponse(e *costing.ExpenseRecord) *ExpenseResponse {
	return &ExpenseResponse{
		ID:               e.ID,
		Name:             e.Name,
		Category:         string(e.Category),
		Amount:           e.Amount,
		Date:             e.Date,
		IsProductionCost: e.Category.IsProductionCost(),
		CreatedAt:        e.CreatedAt,
	}
}

// CreateExpense records an expense
func (s *RecordService) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	category := costing.ExpenseCategory(req.Category)
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown expense category")
	}

	expense, err := costing.NewExpenseRecord(req.Name, category, req.Amount, req.Date)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)

	return toExpenseResponse(expense), nil
}

// ListExpenses returns all expense records, optionally scoped to one category
func (s *RecordService) ListExpenses(ctx context.Context, category string) ([]*ExpenseResponse, error) {
	var (
		expenses []*costing.ExpenseRecord
		err      error
	)
	if category != "" {
		parsed := costing.ExpenseCategory(category)
		if !parsed.IsValid() {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown expense category")
		}
		expenses, err = s.expenseRepo.FindByCategory(ctx, parsed)
	} else {
		expenses, err = s.expenseRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	responses := make([]*ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		responses[i] = toExpenseResponse(expense)
	}
	return responses, nil
}

// GetExpense returns one expense record
func (s *RecordService) GetExpense(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// DeleteExpense removes an expense record
func (s *RecordService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateReports(ctx)
	return nil
}

// ===================== Absence Records =====================

// CreateAbsenceRequest represents a request to record an employee absence
type CreateAbsenceRequest struct {
	Employee string    `json:"employee" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
	Reason   string    `json:"reason"`
}

// AbsenceResponse represents an absence record in API responses
type AbsenceResponse struct {
	ID        uuid.UUID `json:"id"`
	Employee  string    `json:"employee"`
	Date      time.Time `json:"date"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toAbsenceResponse(a *payroll.AbsenceRecord) *AbsenceResponse {
	return &AbsenceResponse{
		ID:        a.ID,
		Employee:  a.Employee,
		Date:      a.Date,
		Reason:    a.Reason,
		CreatedAt: a.CreatedAt,
	}
}

// CreateAbsence records an absence
func (s *RecordService) CreateAbsence(ctx context.Context, req CreateAbsenceRequest) (*AbsenceResponse, error) {
	absence, err := payroll.NewAbsenceRecord(req.Employee, req.Date, req.Reason)
	if err != nil {
		return nil, err
	}

	if err := s.absenceRepo.Save(ctx, absence); err != nil {
		return nil, err
	}

	return toAbsenceResponse(absence), nil
}

// ListAbsences returns all absence records, optionally scoped to one employee
func (s *RecordService) ListAbsences(ctx context.Context, employee string) ([]*AbsenceResponse, error) {
	var (
		absences []*payroll.AbsenceRecord
		err      error
	)
	if employee != "" {
		absences, err = s.absenceRepo.FindByEmployee(ctx, employee)
	} else {
		absences, err = s.absenceRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	responses := make([]*AbsenceResponse, len(absences))
	for i, absence := range absences {
		responses[i] = toAbsenceResponse(absence)
	}
	return responses, nil
}

// DeleteAbsence removes an absence record
func (s *RecordService) DeleteAbsence(ctx context.Context, id uuid.UUID) error {
	return s.absenceRepo.Delete(ctx, id)
}
