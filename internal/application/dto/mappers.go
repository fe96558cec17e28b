package dto

import (
	"github.com/jhoicas/stockpro-api/internal/domain/entity"
	"github.com/jhoicas/stockpro-api/internal/domain/report"
)

// ToProductResponse convierte la entidad al DTO de salida.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		MinStock:    p.MinStock,
		LowStock:    p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		ZipCode:   c.ZipCode,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToSaleResponse expone el snapshot guardado, no los datos vivos del producto o cliente.
func ToSaleResponse(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:           s.ID,
		CustomerID:   s.CustomerID,
		ProductID:    s.ProductID,
		CustomerName: s.Snapshot.CustomerName,
		ProductName:  s.Snapshot.ProductName,
		UnitPrice:    s.Snapshot.UnitPrice,
		Quantity:     s.Quantity,
		Total:        s.Total,
		Status:       s.Status,
		Date:         s.Date.Format(DateLayout),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Company:   u.Company,
		Role:      u.Role,
		Plan:      u.Plan,
		IsPremium: u.IsPremium(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toSaleResponses(sales []*entity.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, ToSaleResponse(s))
	}
	return out
}

// ToReportResponse aplana el informe de dominio. Todas las listas salen no nulas.
func ToReportResponse(r report.Report) ReportResponse {
	top := make([]TopProductDTO, 0, len(r.TopProducts))
	for _, tp := range r.TopProducts {
		top = append(top, TopProductDTO{
			ProductID:   tp.ProductID,
			ProductName: tp.ProductName,
			Quantity:    tp.Quantity,
			Revenue:     tp.Revenue,
		})
	}
	low := make([]ProductResponse, 0, len(r.LowStockProducts))
	for _, p := range r.LowStockProducts {
		low = append(low, ToProductResponse(p))
	}
	return ReportResponse{
		Period:           string(r.Period),
		PeriodStart:      r.Start,
		Sales:            toSaleResponses(r.PeriodSales),
		Revenue:          r.Revenue,
		TotalSales:       r.TotalSales,
		NewCustomers:     r.NewCustomers,
		NewProducts:      r.NewProducts,
		TopProducts:      top,
		RecentSales:      toSaleResponses(r.RecentSales),
		LowStockProducts: low,
		StatusCounts: StatusCountsDTO{
			Paid:    r.StatusCounts.Paid,
			Pending: r.StatusCounts.Pending,
			Overdue: r.StatusCounts.Overdue,
		},
	}
}
