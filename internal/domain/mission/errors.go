package mission

import "errors"

var (
	ErrMissionNotFound       = errors.New("mission not found")
	ErrMissionNotActive      = errors.New("mission is completed or cancelled")
	ErrInterventionNotFound  = errors.New("intervention not found")
	ErrInterventionProcessed = errors.New("intervention already completed or cancelled")
	ErrTechnicianNotFound    = errors.New("technician not found")
	ErrTechnicianUnavailable = errors.New("technician already booked at this time")
	ErrInsufficientStock     = errors.New("insufficient stock for requested materials")
)
