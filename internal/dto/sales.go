package dto

// UpsertSalesSummaryRequest declares a boutique's daily total. TotalSAR is decoded loosely and must
// be a whole, non-negative SAR amount.
type UpsertSalesSummaryRequest struct {
	BoutiqueID string `json:"boutiqueId"`
	Date       string `json:"date" binding:"required,datekey"`
	TotalSAR   any    `json:"totalSar" swaggertype:"integer"`
}

// UpsertSalesLineRequest sets one employee's amount on a summary, in whole SAR.
type UpsertSalesLineRequest struct {
	EmpID     string `json:"empId" binding:"required"`
	AmountSAR any    `json:"amountSar" swaggertype:"integer"`
}
