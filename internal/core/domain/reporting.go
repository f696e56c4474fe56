package domain

// PeriodMetric compares actual sales against target for one period, in halalas.
type PeriodMetric struct {
	TargetHalalas int64  `json:"targetHalalas"`
	ActualHalalas int64  `json:"actualHalalas"`
	Pct           int64  `json:"pct"`
	TargetDisplay string `json:"targetDisplay"`
	ActualDisplay string `json:"actualDisplay"`
}

// TargetMetrics is the day/week/month decomposition for a boutique or one of its employees.
type TargetMetrics struct {
	BoutiqueID         string       `json:"boutiqueId"`
	UserID             string       `json:"userId,omitempty"`
	Month              string       `json:"month"`
	AsOfDate           string       `json:"asOfDate,omitempty"`
	DaysInMonth        int          `json:"daysInMonth"`
	MonthTargetHalalas int64        `json:"monthTargetHalalas"`
	Daily              PeriodMetric `json:"daily"`
	Week               PeriodMetric `json:"week"`
	MonthToDate        PeriodMetric `json:"monthToDate"`
	PctDaily           int64        `json:"pctDaily"`
	PctWeek            int64        `json:"pctWeek"`
	PctMonth           int64        `json:"pctMonth"`
	RemainingHalalas   int64        `json:"remainingHalalas"`
	RemainingDisplay   string       `json:"remainingDisplay"`
	WeekStart          string       `json:"weekStart,omitempty"`
	WeekEndInclusive   string       `json:"weekEndInclusive,omitempty"`
}

// EmployeeSalesRow is one employee line of the boutique dashboard.
type EmployeeSalesRow struct {
	EmpID         string `json:"empId"`
	UserID        string `json:"userId"`
	Name          string `json:"name"`
	TargetHalalas int64  `json:"targetHalalas"`
	ActualHalalas int64  `json:"actualHalalas"`
	Pct           int64  `json:"pct"`
}

// YearOverYear compares month-to-date sales with the same span last year.
type YearOverYear struct {
	Period             string `json:"period"`
	PriorPeriod        string `json:"priorPeriod"`
	PriorActualHalalas int64  `json:"priorActualHalalas"`
	ChangePct          int64  `json:"changePct"`
}

// BoutiqueSalesDashboard is the sales dashboard block for one boutique.
type BoutiqueSalesDashboard struct {
	BoutiqueID    string             `json:"boutiqueId"`
	Month         string             `json:"month"`
	TargetHalalas int64              `json:"targetHalalas"`
	ActualHalalas int64              `json:"actualHalalas"`
	Pct           int64              `json:"pct"`
	TargetDisplay string             `json:"targetDisplay"`
	ActualDisplay string             `json:"actualDisplay"`
	Employees     []EmployeeSalesRow `json:"employees"`
	YoY           YearOverYear       `json:"yoy"`
}

// DashboardSalesMetrics is the sales dashboard for a resolved scope.
type DashboardSalesMetrics struct {
	Month     string                   `json:"month"`
	IsGlobal  bool                     `json:"isGlobal"`
	Boutiques []BoutiqueSalesDashboard `json:"boutiques"`
}
