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

package model

import (
	"fmt"
	"regexp"
	"strings"
)

// phonePattern accepts digits only, 7 to 15 characters.
var phonePattern = regexp.MustCompile(`^\d{7,15}$`)

func normalizePhone(phone string) (string, error) {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return "", fmt.Errorf("phone number cannot be blank")
	}
	if !phonePattern.MatchString(trimmed) {
		return "", fmt.Errorf("phone number must contain only digits and be 7-15 characters long")
	}
	return trimmed, nil
}

// Doctor is a medical professional seeing patients at the clinic.
type Doctor struct {
	Entity
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Specialty   string `json:"specialty"`
	PhoneNumber string `json:"phone_number"`
}

// NewDoctor builds a doctor with fresh audit stamps.
func NewDoctor(id int64, firstName, lastName, specialty, phoneNumber string) (*Doctor, error) {
	base, err := newEntity(id)
	if err != nil {
		return nil, err
	}
	d := &Doctor{Entity: base}
	if err := d.SetFirstName(firstName); err != nil {
		return nil, err
	}
	if err := d.SetLastName(lastName); err != nil {
		return nil, err
	}
	if err := d.SetSpecialty(specialty); err != nil {
		return nil, err
	}
	if err := d.SetPhoneNumber(phoneNumber); err != nil {
		return nil, err
	}
	return d, nil
}

// RehydrateDoctor rebuilds a doctor from storage, preserving audit stamps.
func RehydrateDoctor(id int64, firstName, lastName, specialty, phoneNumber, createdAt, updatedAt string) (*Doctor, error) {
	base, err := rehydrateEntity(id, createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	d := &Doctor{Entity: base}
	if err := d.SetFirstName(firstName); err != nil {
		return nil, err
	}
	if err := d.SetLastName(lastName); err != nil {
		return nil, err
	}
	if err := d.SetSpecialty(specialty); err != nil {
		return nil, err
	}
	if err := d.SetPhoneNumber(phoneNumber); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Doctor) SetFirstName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("first name cannot be blank")
	}
	d.FirstName = trimmed
	return nil
}

func (d *Doctor) SetLastName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("last name cannot be blank")
	}
	d.LastName = trimmed
	return nil
}

func (d *Doctor) SetSpecialty(specialty string) error {
	trimmed := strings.TrimSpace(specialty)
	if trimmed == "" {
		return fmt.Errorf("specialty cannot be blank")
	}
	d.Specialty = trimmed
	return nil
}

func (d *Doctor) SetPhoneNumber(phone string) error {
	normalized, err := normalizePhone(phone)
	if err != nil {
		return err
	}
	d.PhoneNumber = normalized
	return nil
}
