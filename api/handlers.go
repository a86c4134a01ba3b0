/*
handlers.go - HTTP handlers for the vacation engine

PURPOSE:
  Exposes the engine's operations over REST. Handlers parse input, call
  domain logic, and serialize results; no entitlement math lives here.

ENDPOINTS:
  Employees:
    GET    /api/employees                 List employees (?q= lookup)
    POST   /api/employees                 Create employee
    GET    /api/employees/{id}            Get employee
    GET    /api/employees/{id}/report     Balance report (?as_of=DD.MM.YYYY)
    GET    /api/employees/{id}/ledger     Leave history
    POST   /api/employees/{id}/terminate  Dismissal flag
    GET    /api/employees/{id}/severance  Payout on dismissal (?date=)

  Vacation:
    POST   /api/vacation/check            Balance guard verdict
    POST   /api/vacation/take             Process a leave request

  Calendar:
    GET    /api/calendar/days             Count days (?start=&end=&working=)

  Admin:
    POST   /api/admin/accrual             Run the legacy daily step now
    POST   /api/admin/rollover            Run the legacy rollover step now

ERROR HANDLING:
  Domain errors map to statuses in one place (domainStatus):
  400 bad input, 404 unknown employee, 409 insufficient balance,
  422 missing hire date, 500 store failures.
*/
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/staffhub/vacation-engine/legacy"
	"github.com/staffhub/vacation-engine/vacation"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Staff      vacation.StaffRepository
	Ledger     vacation.LedgerRepository
	LegacyRows legacy.Repository
	Calendar   *vacation.ExclusionCalendar

	Reports     *vacation.ReportBuilder
	Guard       *vacation.BalanceGuard
	LegacySched *legacy.Scheduler
	Logger      *slog.Logger
}

// Deps bundles the collaborators a Handler needs.
type Deps struct {
	Staff      vacation.StaffRepository
	Ledger     vacation.LedgerRepository
	LegacyRows legacy.Repository
	Calendar   *vacation.ExclusionCalendar
	Params     vacation.Params
	LegacyRate decimal.Decimal // zero means the default daily rate
	Logger     *slog.Logger
}

// NewHandler wires the engine components over the given repositories.
func NewHandler(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	reports := &vacation.ReportBuilder{Ledger: d.Ledger, Params: d.Params}
	legacySched := legacy.NewScheduler(d.Staff, d.LegacyRows, d.Logger)
	if !d.LegacyRate.IsZero() {
		legacySched.DailyRate = d.LegacyRate
	}
	return &Handler{
		Staff:       d.Staff,
		Ledger:      d.Ledger,
		LegacyRows:  d.LegacyRows,
		Calendar:    d.Calendar,
		Reports:     reports,
		Guard:       &vacation.BalanceGuard{Staff: d.Staff, Reports: reports},
		LegacySched: legacySched,
		Logger:      d.Logger,
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	// ?q= resolves one employee by exact national id, falling back to a
	// case-insensitive name match.
	if query := r.URL.Query().Get("q"); query != "" {
		employee, err := h.Staff.FindByNationalIDOrName(r.Context(), query)
		if err != nil {
			h.writeDomainError(w, "failed to find employee", err)
			return
		}
		writeJSON(w, http.StatusOK, []EmployeeDTO{toEmployeeDTO(employee)})
		return
	}

	employees, err := h.Staff.ListActive(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		dtos = append(dtos, toEmployeeDTO(&e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.FullName == "" || req.NationalID == "" {
		writeError(w, http.StatusBadRequest, "full_name and national_id are required", nil)
		return
	}

	hireDate, err := vacation.ParseDate(req.HireDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid hire_date", err)
		return
	}

	employee := &vacation.Employee{
		GUID:       req.GUID,
		FullName:   req.FullName,
		NationalID: req.NationalID,
		HireDate:   hireDate,
	}
	if err := h.Staff.Create(r.Context(), employee); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create employee", err)
		return
	}

	// The first legacy row opens at hire; its year labels the calendar
	// year the tenure year ends in.
	row := &legacy.YearBalance{EmployeeID: employee.ID, Year: hireDate.Year() + 1}
	if err := h.LegacyRows.Save(r.Context(), row); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to open legacy balance row", err)
		return
	}

	writeJSON(w, http.StatusCreated, toEmployeeDTO(employee))
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.employeeFromPath(w, r)
	if err != nil {
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(employee))
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	employee, err := h.employeeFromPath(w, r)
	if err != nil {
		return
	}

	asOf, ok := h.optionalDate(w, r.URL.Query().Get("as_of"))
	if !ok {
		return
	}

	report, err := h.Reports.Build(r.Context(), employee, asOf)
	if err != nil {
		h.writeDomainError(w, "failed to build report", err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(report))
}

func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	employee, err := h.employeeFromPath(w, r)
	if err != nil {
		return
	}

	entries, err := h.Ledger.ListByEmployee(r.Context(), employee.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list ledger entries", err)
		return
	}

	dtos := make([]LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, LedgerEntryDTO{
			ID:        e.ID,
			DateStart: e.DateStart.String(),
			DateEnd:   e.DateEnd.String(),
			DaysCount: e.DaysCount,
			Type:      string(e.Type),
			Comment:   e.Comment,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) TerminateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id", err)
		return
	}
	if err := h.Staff.Terminate(r.Context(), id); err != nil {
		h.writeDomainError(w, "failed to terminate employee", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "employee terminated"})
}

func (h *Handler) GetSeverance(w http.ResponseWriter, r *http.Request) {
	employee, err := h.employeeFromPath(w, r)
	if err != nil {
		return
	}

	dismissal, err := vacation.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dismissal date", err)
		return
	}

	// Days the newest row will still accrue before the dismissal takes
	// effect. An already-passed date counts 0 (calendar counter quirk).
	daysUntil := h.Calendar.CalendarDays(vacation.Today(), dismissal)

	sev, err := legacy.ComputeSeverance(r.Context(), h.LegacyRows, employee, dismissal, daysUntil, h.LegacySched.DailyRate)
	if err != nil {
		h.writeDomainError(w, "failed to compute severance", err)
		return
	}

	dto := SeveranceDTO{TotalDays: sev.TotalDays}
	for _, l := range sev.Lines {
		dto.Lines = append(dto.Lines, SeveranceLineDTO{
			Days:       l.Days,
			PeriodFrom: l.PeriodFrom.String(),
			PeriodTo:   l.PeriodTo.String(),
		})
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// VACATION HANDLERS
// =============================================================================

func (h *Handler) CheckBalance(w http.ResponseWriter, r *http.Request) {
	var req CheckBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	asOf, ok := h.optionalDate(w, req.AsOf)
	if !ok {
		return
	}

	result, err := h.Guard.CheckBalance(r.Context(), req.EmployeeID, req.DaysRequested, asOf)
	if err != nil {
		h.writeDomainError(w, "failed to check balance", err)
		return
	}

	available, _ := result.Available.Float64()
	writeJSON(w, http.StatusOK, CheckBalanceDTO{
		Approved:  result.Approved,
		Available: available,
		Message:   result.Message,
	})
}

// TakeVacation processes a leave request end to end: counts the calendar
// days, gates deducting codes through the balance guard, appends the
// usage ledger entry, and runs the legacy deduction that feeds the order
// document text.
func (h *Handler) TakeVacation(w http.ResponseWriter, r *http.Request) {
	var req TakeVacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	start, err := vacation.ParseDate(req.DateStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date_start", err)
		return
	}
	end, err := vacation.ParseDate(req.DateEnd)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date_end", err)
		return
	}

	employee, err := h.Staff.GetByGUID(r.Context(), req.GUID)
	if err != nil {
		h.writeDomainError(w, "failed to resolve employee", err)
		return
	}

	days := h.Calendar.CalendarDays(start, end)
	workDays := h.Calendar.WorkingDays(start, end)

	if !legacy.Deducts(req.Code) || days == 0 {
		// Non-deducting assignments only report the counts; nothing is
		// gated, appended or deducted.
		writeJSON(w, http.StatusOK, TakeVacationDTO{Days: days, WorkDays: workDays})
		return
	}

	// The balance is evaluated as of the leave's start date: accrual is
	// tenure-proportional, so days keep accruing until the leave begins.
	check, err := h.Guard.CheckEmployee(r.Context(), employee, days, start)
	if err != nil {
		h.writeDomainError(w, "failed to check balance", err)
		return
	}
	if !check.Approved {
		available, _ := check.Available.Float64()
		writeJSON(w, http.StatusConflict, CheckBalanceDTO{
			Approved:  false,
			Available: available,
			Message:   check.Message,
		})
		return
	}

	entry := &vacation.LedgerEntry{
		EmployeeID: employee.ID,
		DateStart:  start,
		DateEnd:    end,
		DaysCount:  days,
		Type:       vacation.EntryPaid,
		Comment:    "vacation code " + req.Code,
	}
	if err := h.Ledger.Append(r.Context(), entry); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to append ledger entry", err)
		return
	}

	deduction, err := legacy.Deduct(r.Context(), h.LegacyRows, employee, req.Code, start, end, days)
	if err != nil {
		// The ledger entry is already in; the legacy rows are now behind.
		// Surface loudly so the rows can be reconciled by hand.
		h.Logger.Error("legacy deduction failed after ledger append",
			slog.Int64("employee_id", employee.ID),
			slog.Int64("ledger_entry_id", entry.ID),
			slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "ledger updated but legacy deduction failed", err)
		return
	}

	dto := TakeVacationDTO{Days: days, WorkDays: workDays}
	for _, line := range deduction.Lines {
		dto.WorkPeriodLines = append(dto.WorkPeriodLines, line.String())
	}
	if len(deduction.Lines) > 0 {
		dto.WorkPeriod = "from " + deduction.WorkPeriodFrom.String() + " to " + deduction.WorkPeriodTo.String()
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// CALENDAR HANDLER
// =============================================================================

func (h *Handler) CountDays(w http.ResponseWriter, r *http.Request) {
	start, err := vacation.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date", err)
		return
	}
	end, err := vacation.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date", err)
		return
	}

	working := r.URL.Query().Get("working") == "true"
	days := h.Calendar.CalendarDays(start, end)
	if working {
		days = h.Calendar.WorkingDays(start, end)
	}

	writeJSON(w, http.StatusOK, DayCountDTO{
		Start:   start.String(),
		End:     end.String(),
		Working: working,
		Days:    days,
	})
}

// =============================================================================
// ADMIN HANDLERS - manual triggers for the legacy steps
// =============================================================================

func (h *Handler) RunDailyAccrual(w http.ResponseWriter, r *http.Request) {
	if err := h.LegacySched.RunDailyAccrual(r.Context(), vacation.Today()); err != nil {
		writeError(w, http.StatusInternalServerError, "daily accrual failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "daily accrual applied"})
}

func (h *Handler) RunAnnualRollover(w http.ResponseWriter, r *http.Request) {
	if err := h.LegacySched.RunAnnualRollover(r.Context(), vacation.Today()); err != nil {
		writeError(w, http.StatusInternalServerError, "annual rollover failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "rollover applied"})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) employeeFromPath(w http.ResponseWriter, r *http.Request) (*vacation.Employee, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id", err)
		return nil, err
	}
	employee, err := h.Staff.GetByID(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "failed to get employee", err)
		return nil, err
	}
	return employee, nil
}

// optionalDate parses a date string that may be empty. The second return
// is false when the response has already been written.
func (h *Handler) optionalDate(w http.ResponseWriter, s string) (vacation.Date, bool) {
	if s == "" {
		return vacation.Date{}, true
	}
	d, err := vacation.ParseDate(s)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err)
		return vacation.Date{}, false
	}
	return d, true
}

func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	writeError(w, domainStatus(err), message, err)
}

func domainStatus(err error) int {
	switch {
	case errors.Is(err, vacation.ErrEmployeeNotFound):
		return http.StatusNotFound
	case errors.Is(err, vacation.ErrInvalidDateFormat):
		return http.StatusBadRequest
	case errors.Is(err, vacation.ErrMissingHireDate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, vacation.ErrInsufficientBalance):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func toEmployeeDTO(e *vacation.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:         e.ID,
		GUID:       e.GUID,
		FullName:   e.FullName,
		NationalID: e.NationalID,
		Terminated: e.Terminated,
	}
	if !e.HireDate.IsZero() {
		dto.HireDate = e.HireDate.String()
	}
	return dto
}

func toReportDTO(report *vacation.BalanceReport) ReportDTO {
	total, _ := report.TotalBalance.Float64()
	dto := ReportDTO{
		FullName:     report.FullName,
		NationalID:   report.NationalID,
		HireDate:     report.HireDate.String(),
		AsOf:         report.AsOf.String(),
		TotalUsed:    report.TotalUsed,
		TotalBalance: total,
	}
	for _, p := range report.Periods {
		earned, _ := p.Earned.Float64()
		used, _ := p.Used.Float64()
		balance, _ := p.Balance.Float64()
		dto.Breakdown = append(dto.Breakdown, PeriodDTO{
			Period:  p.String(),
			Current: p.Current,
			Earned:  earned,
			Used:    used,
			Balance: balance,
		})
	}
	return dto
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]string{"error": message}
	if err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}
