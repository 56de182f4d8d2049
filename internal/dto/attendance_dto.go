package dto

type CheckInRequest struct {
	// UserID is optional for owners checking in staff; defaults to the caller.
	UserID *string `json:"user_id" validate:"omitempty,uuid"`
}

type AttendanceFilter struct {
	Date string `form:"date"` // YYYY-MM-DD; empty = today
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	UserName     string  `json:"user_name"`
	BusinessDate string  `json:"business_date"`
	CheckIn      string  `json:"check_in"`
	CheckOut     *string `json:"check_out,omitempty"`
	// HoursWorked is present once checked out, rounded to 2 decimals.
	HoursWorked *float64 `json:"hours_worked,omitempty"`
}
