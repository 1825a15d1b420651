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

package main

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"

	"github.com/clinichq/frontdesk/internal/timeutil"
	"github.com/clinichq/frontdesk/model"
)

var specialties = []string{
	"General Practice", "Pediatrics", "Cardiology", "Dermatology",
	"Orthopedics", "Neurology", "Ophthalmology", "ENT",
}

func seedCommands(app *appInstance) *cobra.Command {
	var patients, doctors, appointments int

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "generate demo patients, doctors and appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			var patientIDs, doctorIDs []int64

			for i := 0; i < patients; i++ {
				p, err := app.fd.CreatePatient(
					gofakeit.FirstName(), gofakeit.LastName(),
					gofakeit.Number(1, 99), gofakeit.Numerify("##########"))
				if err != nil {
					return err
				}
				patientIDs = append(patientIDs, p.ID)
			}

			for i := 0; i < doctors; i++ {
				d, err := app.fd.CreateDoctor(
					gofakeit.FirstName(), gofakeit.LastName(),
					gofakeit.RandomString(specialties), gofakeit.Numerify("##########"))
				if err != nil {
					return err
				}
				doctorIDs = append(doctorIDs, d.ID)
			}

			created := 0
			if len(patientIDs) > 0 && len(doctorIDs) > 0 {
				now := time.Now()
				for i := 0; i < appointments; i++ {
					day := gofakeit.DateRange(now, now.AddDate(0, 1, 0))
					start := time.Date(day.Year(), day.Month(), day.Day(),
						gofakeit.Number(8, 17), gofakeit.RandomInt([]int{0, 15, 30, 45}), 0, 0, time.Local)
					_, err := app.fd.CreateAppointment(
						patientIDs[gofakeit.Number(0, len(patientIDs)-1)],
						doctorIDs[gofakeit.Number(0, len(doctorIDs)-1)],
						timeutil.FormatDate(start), timeutil.FormatTime(start), "00:30",
						model.AppointmentScheduled, gofakeit.City(), "",
						gofakeit.Sentence(4), "")
					if err != nil {
						return err
					}
					created++
				}
			}

			fmt.Printf("seeded %d patients, %d doctors, %d appointments\n",
				len(patientIDs), len(doctorIDs), created)
			return nil
		},
	}
	seedCmd.Flags().IntVar(&patients, "patients", 10, "number of patients to create")
	seedCmd.Flags().IntVar(&doctors, "doctors", 3, "number of doctors to create")
	seedCmd.Flags().IntVar(&appointments, "appointments", 15, "number of appointments to create")

	return seedCmd
}
