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
	"strings"
)

// Patient is an individual receiving care at the clinic.
type Patient struct {
	Entity
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Age         int    `json:"age"`
	PhoneNumber string `json:"phone_number"`
}

// NewPatient builds a patient with fresh audit stamps.
func NewPatient(id int64, firstName, lastName string, age int, phoneNumber string) (*Patient, error) {
	base, err := newEntity(id)
	if err != nil {
		return nil, err
	}
	p := &Patient{Entity: base}
	if err := p.SetFirstName(firstName); err != nil {
		return nil, err
	}
	if err := p.SetLastName(lastName); err != nil {
		return nil, err
	}
	if err := p.SetAge(age); err != nil {
		return nil, err
	}
	if err := p.SetPhoneNumber(phoneNumber); err != nil {
		return nil, err
	}
	return p, nil
}

// RehydratePatient rebuilds a patient from storage, preserving audit stamps.
func RehydratePatient(id int64, firstName, lastName string, age int, phoneNumber, createdAt, updatedAt string) (*Patient, error) {
	base, err := rehydrateEntity(id, createdAt, updatedAt)
	if err != nil {
		return nil, err
	}
	p := &Patient{Entity: base}
	if err := p.SetFirstName(firstName); err != nil {
		return nil, err
	}
	if err := p.SetLastName(lastName); err != nil {
		return nil, err
	}
	if err := p.SetAge(age); err != nil {
		return nil, err
	}
	if err := p.SetPhoneNumber(phoneNumber); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Patient) SetFirstName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("first name cannot be blank")
	}
	p.FirstName = trimmed
	return nil
}

func (p *Patient) SetLastName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("last name cannot be blank")
	}
	p.LastName = trimmed
	return nil
}

func (p *Patient) SetAge(age int) error {
	if age < 1 || age > 120 {
		return fmt.Errorf("age must be between 1 and 120, got %d", age)
	}
	p.Age = age
	return nil
}

func (p *Patient) SetPhoneNumber(phone string) error {
	normalized, err := normalizePhone(phone)
	if err != nil {
		return err
	}
	p.PhoneNumber = normalized
	return nil
}
