/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupled from the domain types.
  Dates cross the wire in the human-facing DD.MM.YYYY convention; day
  amounts as plain numbers rounded by the engine.

NAMING CONVENTION:
  - *DTO: response types returned to clients
  - *Request: request body types from clients
*/
package api

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID         int64  `json:"id"`
	GUID       string `json:"guid,omitempty"`
	FullName   string `json:"full_name"`
	NationalID string `json:"national_id"`
	HireDate   string `json:"hire_date,omitempty"`
	Terminated bool   `json:"terminated"`
}

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	GUID       string `json:"guid"`
	FullName   string `json:"full_name"`
	NationalID string `json:"national_id"`
	HireDate   string `json:"hire_date"`
}

// PeriodDTO is one work period line of a balance report.
type PeriodDTO struct {
	Period  string  `json:"period"`
	Current bool    `json:"current"`
	Earned  float64 `json:"earned"`
	Used    float64 `json:"used"`
	Balance float64 `json:"balance"`
}

// ReportDTO is the per-employee balance report.
type ReportDTO struct {
	FullName     string      `json:"fullname"`
	NationalID   string      `json:"national_id"`
	HireDate     string      `json:"hire_date"`
	AsOf         string      `json:"as_of"`
	TotalUsed    int         `json:"total_used"`
	TotalBalance float64     `json:"total_balance"`
	Breakdown    []PeriodDTO `json:"breakdown"`
}

// LedgerEntryDTO is one consumed leave in the history listing.
type LedgerEntryDTO struct {
	ID        int64  `json:"id"`
	DateStart string `json:"date_start"`
	DateEnd   string `json:"date_end"`
	DaysCount int    `json:"days_count"`
	Type      string `json:"type"`
	Comment   string `json:"comment,omitempty"`
}

// CheckBalanceRequest asks whether a number of days fits the balance.
type CheckBalanceRequest struct {
	EmployeeID    int64  `json:"employee_id"`
	DaysRequested int    `json:"days_requested"`
	AsOf          string `json:"as_of,omitempty"`
}

// CheckBalanceDTO is the guard's verdict.
type CheckBalanceDTO struct {
	Approved  bool    `json:"approved"`
	Available float64 `json:"available"`
	Message   string  `json:"message"`
}

// TakeVacationRequest submits a leave for processing.
type TakeVacationRequest struct {
	GUID      string `json:"guid"`
	DateStart string `json:"date_start"`
	DateEnd   string `json:"date_end"`
	Code      string `json:"code"`
}

// TakeVacationDTO reports a processed leave, including the period lines
// printed into the leave order document.
type TakeVacationDTO struct {
	Days            int      `json:"days"`
	WorkDays        int      `json:"work_days"`
	WorkPeriod      string   `json:"work_period,omitempty"`
	WorkPeriodLines []string `json:"work_period_list,omitempty"`
}

// DayCountDTO is the calendar counter response.
type DayCountDTO struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Working bool   `json:"working"`
	Days    int    `json:"days"`
}

// SeveranceLineDTO is one tenure year's contribution to the payout.
type SeveranceLineDTO struct {
	Days       int    `json:"days"`
	PeriodFrom string `json:"period_from"`
	PeriodTo   string `json:"period_to"`
}

// SeveranceDTO is the dismissal compensation summary.
type SeveranceDTO struct {
	TotalDays int                `json:"total_days"`
	Lines     []SeveranceLineDTO `json:"lines"`
}
