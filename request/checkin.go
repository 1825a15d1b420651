package request

type ScheduledCheckIn struct {
	AppointmentID int64  `json:"appointment_id"`
	Desk          string `json:"desk"`
	Notes         string `json:"notes"`
}

type WalkInCheckIn struct {
	PatientID       int64  `json:"patient_id"`
	DoctorID        int64  `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Duration        string `json:"duration"`
	Priority        int    `json:"priority"`
	Desk            string `json:"desk"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
}

type UpdateWalkInPriority struct {
	CheckInID int64 `json:"check_in_id"`
	Priority  int   `json:"priority"`
}

type UpdateCheckInDesk struct {
	CheckInID int64  `json:"check_in_id"`
	Desk      string `json:"desk"`
}

type UpdateCheckInNotes struct {
	CheckInID int64  `json:"check_in_id"`
	Notes     string `json:"notes"`
}
