package request

type CreateAppointment struct {
	PatientID       int64  `json:"patient_id"`
	DoctorID        int64  `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Duration        string `json:"duration"`
	Location        string `json:"location"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
	FollowUpDate    string `json:"follow_up_date"`
}

type UpdateAppointment struct {
	ID              int64  `json:"id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Duration        string `json:"duration"`
	Location        string `json:"location"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
	FollowUpDate    string `json:"follow_up_date"`
}

type UpdateAppointmentStatus struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}
