package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"foodcart360/internal/dto"
	"foodcart360/internal/model"
	"foodcart360/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("no open check-in for today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
)

type AttendanceService interface {
	CheckIn(ctx context.Context, userID string) (*dto.AttendanceResponse, error)
	CheckOut(ctx context.Context, userID string) (*dto.AttendanceResponse, error)
	ListByDate(ctx context.Context, date string) ([]dto.AttendanceResponse, error)
}

type attendanceService struct {
	repo     repository.AttendanceRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewAttendanceService(repo repository.AttendanceRepository, userRepo repository.UserRepository) AttendanceService {
	return &attendanceService{repo: repo, userRepo: userRepo, now: time.Now}
}

// CheckIn opens today's record for the user. One record per user per day; a
// second check-in the same day is rejected rather than overwritten.
func (s *attendanceService) CheckIn(ctx context.Context, userID string) (*dto.AttendanceResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	user, err := s.userRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, errors.New("user not found")
	}

	today := s.now().Format("2006-01-02")
	if existing, err := s.repo.FindByUserAndDate(ctx, uid, today); err == nil && existing != nil {
		return nil, ErrAlreadyCheckedIn
	}

	record := &model.AttendanceRecord{
		UserID:       uid,
		BusinessDate: today,
		CheckIn:      s.now(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("check-in: %w", err)
	}
	return attendanceToResponse(record, user.Name), nil
}

func (s *attendanceService) CheckOut(ctx context.Context, userID string) (*dto.AttendanceResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	user, err := s.userRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, errors.New("user not found")
	}

	today := s.now().Format("2006-01-02")
	record, err := s.repo.FindByUserAndDate(ctx, uid, today)
	if err != nil || record == nil {
		return nil, ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return nil, ErrAlreadyCheckedOut
	}

	out := s.now()
	record.CheckOut = &out
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("check-out: %w", err)
	}
	return attendanceToResponse(record, user.Name), nil
}

func (s *attendanceService) ListByDate(ctx context.Context, date string) ([]dto.AttendanceResponse, error) {
	if date == "" {
		date = s.now().Format("2006-01-02")
	} else if _, ok := normalizeDate(date); !ok {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
	}
	records, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		name := ""
		if records[i].User != nil {
			name = records[i].User.Name
		}
		resp = append(resp, *attendanceToResponse(&records[i], name))
	}
	return resp, nil
}

func attendanceToResponse(a *model.AttendanceRecord, userName string) *dto.AttendanceResponse {
	resp := &dto.AttendanceResponse{
		ID:           a.ID.String(),
		UserID:       a.UserID.String(),
		UserName:     userName,
		BusinessDate: a.BusinessDate,
		CheckIn:      a.CheckIn.Format("2006-01-02T15:04:05Z"),
	}
	if a.CheckOut != nil {
		out := a.CheckOut.Format("2006-01-02T15:04:05Z")
		resp.CheckOut = &out
		hours := math.Round(a.CheckOut.Sub(a.CheckIn).Hours()*100) / 100
		resp.HoursWorked = &hours
	}
	return resp
}
