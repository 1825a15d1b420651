/*
Copyright 2025 Clinic Frontdesk Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package request

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/clinichq/frontdesk/internal/timeutil"
	"github.com/clinichq/frontdesk/model"
)

var phoneRule = validation.Match(regexp.MustCompile(`^\d{7,15}$`)).Error("phone number must be 7 to 15 digits")

func dateValidation(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return errors.New("invalid type for date")
	}
	if _, err := timeutil.ParseDate(s); err != nil {
		return errors.New("please format the date as 'dd-MM-yyyy' (e.g., 22-04-2025)")
	}
	return nil
}

func timeValidation(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return errors.New("invalid type for time")
	}
	if _, err := timeutil.ParseTime(s); err != nil {
		return errors.New("please format the time as 'HH:mm' (e.g., 14:30)")
	}
	return nil
}

func durationValidation(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return errors.New("invalid type for duration")
	}
	if _, err := timeutil.ParseDurationToMinutes(s); err != nil {
		return errors.New("please format the duration as 'HH:mm' (e.g., 00:30)")
	}
	return nil
}

func (p *CreatePatient) ValidateCreatePatient() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.FirstName, validation.Required),
		validation.Field(&p.LastName, validation.Required),
		validation.Field(&p.Age, validation.Required, validation.Min(1), validation.Max(120)),
		validation.Field(&p.PhoneNumber, validation.Required, phoneRule),
	)
}

func (p *UpdatePatient) ValidateUpdatePatient() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.ID, validation.Required, validation.Min(1)),
		validation.Field(&p.Age, validation.When(p.Age != 0, validation.Min(1), validation.Max(120))),
		validation.Field(&p.PhoneNumber, validation.When(p.PhoneNumber != "", phoneRule)),
	)
}

func (d *CreateDoctor) ValidateCreateDoctor() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.FirstName, validation.Required),
		validation.Field(&d.LastName, validation.Required),
		validation.Field(&d.Specialty, validation.Required),
		validation.Field(&d.PhoneNumber, validation.Required, phoneRule),
	)
}

func (d *UpdateDoctor) ValidateUpdateDoctor() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.ID, validation.Required, validation.Min(1)),
		validation.Field(&d.PhoneNumber, validation.When(d.PhoneNumber != "", phoneRule)),
	)
}

func (a *CreateAppointment) ValidateCreateAppointment() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.PatientID, validation.Required, validation.Min(1)),
		validation.Field(&a.DoctorID, validation.Required, validation.Min(1)),
		validation.Field(&a.AppointmentDate, validation.Required, validation.By(dateValidation)),
		validation.Field(&a.AppointmentTime, validation.Required, validation.By(timeValidation)),
		validation.Field(&a.Duration, validation.Required, validation.By(durationValidation)),
		validation.Field(&a.FollowUpDate, validation.When(a.FollowUpDate != "", validation.By(dateValidation))),
	)
}

func (a *UpdateAppointment) ValidateUpdateAppointment() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.ID, validation.Required, validation.Min(1)),
		validation.Field(&a.AppointmentDate, validation.When(a.AppointmentDate != "", validation.By(dateValidation))),
		validation.Field(&a.AppointmentTime, validation.When(a.AppointmentTime != "", validation.By(timeValidation))),
		validation.Field(&a.Duration, validation.When(a.Duration != "", validation.By(durationValidation))),
		validation.Field(&a.FollowUpDate, validation.When(a.FollowUpDate != "", validation.By(dateValidation))),
	)
}

func (a *UpdateAppointmentStatus) ValidateUpdateAppointmentStatus() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.ID, validation.Required, validation.Min(1)),
		validation.Field(&a.Status, validation.Required, validation.By(func(value interface{}) error {
			s, ok := value.(string)
			if !ok {
				return errors.New("invalid type for status")
			}
			if !model.IsValidAppointmentStatus(s) {
				return errors.New("unknown appointment status")
			}
			return nil
		})),
	)
}

func (c *ScheduledCheckIn) ValidateScheduledCheckIn() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.AppointmentID, validation.Required, validation.Min(1)),
	)
}

func (c *WalkInCheckIn) ValidateWalkInCheckIn() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.PatientID, validation.Required, validation.Min(1)),
		validation.Field(&c.DoctorID, validation.Required, validation.Min(1)),
		validation.Field(&c.AppointmentDate, validation.Required, validation.By(dateValidation)),
		validation.Field(&c.AppointmentTime, validation.Required, validation.By(timeValidation)),
		validation.Field(&c.Duration, validation.Required, validation.By(durationValidation)),
		validation.Field(&c.Priority, validation.Min(0)),
	)
}

func (c *UpdateWalkInPriority) ValidateUpdateWalkInPriority() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.CheckInID, validation.Required, validation.Min(1)),
		validation.Field(&c.Priority, validation.Min(0)),
	)
}

func (c *UpdateCheckInDesk) ValidateUpdateCheckInDesk() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.CheckInID, validation.Required, validation.Min(1)),
	)
}

func (c *UpdateCheckInNotes) ValidateUpdateCheckInNotes() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.CheckInID, validation.Required, validation.Min(1)),
	)
}
