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

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clinichq/frontdesk"
	"github.com/clinichq/frontdesk/request"
)

func printResult(res *frontdesk.CheckInResult) {
	if res == nil {
		fmt.Println("no patient waiting")
		return
	}
	if res.SyncWarning != nil {
		logrus.Warnf("appointment %d could not be set to %q: %s",
			res.SyncWarning.AppointmentID, res.SyncWarning.Status, res.SyncWarning.Reason)
	}
	printJSON(res.CheckIn)
}

func checkInCommands(app *appInstance) *cobra.Command {
	checkInCmd := &cobra.Command{
		Use:   "checkin",
		Short: "manage the check-in queues",
	}

	var schedReq request.ScheduledCheckIn
	scheduledCmd := &cobra.Command{
		Use:   "scheduled",
		Short: "check in a patient for an existing appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := schedReq.ValidateScheduledCheckIn(); err != nil {
				return err
			}
			res, err := app.fd.CheckInScheduled(schedReq.AppointmentID, schedReq.Desk, schedReq.Notes)
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}
	scheduledCmd.Flags().Int64Var(&schedReq.AppointmentID, "appointment", 0, "appointment id")
	scheduledCmd.Flags().StringVar(&schedReq.Desk, "desk", "", "desk where check-in occurred")
	scheduledCmd.Flags().StringVar(&schedReq.Notes, "notes", "", "check-in notes")

	var walkInReq request.WalkInCheckIn
	walkInCmd := &cobra.Command{
		Use:   "walkin",
		Short: "check in a walk-in patient with a new appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := walkInReq.ValidateWalkInCheckIn(); err != nil {
				return err
			}
			res, err := app.fd.CheckInWalkIn(walkInReq.PatientID, walkInReq.DoctorID,
				walkInReq.AppointmentDate, walkInReq.AppointmentTime, walkInReq.Duration,
				walkInReq.Priority, walkInReq.Desk, walkInReq.Reason, walkInReq.Notes)
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}
	walkInCmd.Flags().Int64Var(&walkInReq.PatientID, "patient", 0, "patient id")
	walkInCmd.Flags().Int64Var(&walkInReq.DoctorID, "doctor", 0, "doctor id")
	walkInCmd.Flags().StringVar(&walkInReq.AppointmentDate, "date", "", "appointment date (dd-MM-yyyy)")
	walkInCmd.Flags().StringVar(&walkInReq.AppointmentTime, "time", "", "appointment time (HH:mm)")
	walkInCmd.Flags().StringVar(&walkInReq.Duration, "duration", "00:30", "duration (HH:mm)")
	walkInCmd.Flags().IntVar(&walkInReq.Priority, "priority", 0, "queue priority (higher first)")
	walkInCmd.Flags().StringVar(&walkInReq.Desk, "desk", "", "desk where check-in occurred")
	walkInCmd.Flags().StringVar(&walkInReq.Reason, "reason", "", "reason for the visit")
	walkInCmd.Flags().StringVar(&walkInReq.Notes, "notes", "", "check-in notes")

	var scheduled bool
	nextCmd := &cobra.Command{
		Use:   "next",
		Short: "call the next waiting patient (walk-in by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var res *frontdesk.CheckInResult
			var err error
			if scheduled {
				res, err = app.fd.CallNextScheduled()
			} else {
				res, err = app.fd.CallNextWalkIn()
			}
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}
	nextCmd.Flags().BoolVar(&scheduled, "scheduled", false, "call from the scheduled queue instead")

	completeCmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "mark a check-in completed and archive it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := app.fd.MarkCompleted(id)
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}

	var prioReq request.UpdateWalkInPriority
	priorityCmd := &cobra.Command{
		Use:   "priority <id>",
		Short: "change a waiting walk-in's priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			prioReq.CheckInID = id
			if err := prioReq.ValidateUpdateWalkInPriority(); err != nil {
				return err
			}
			c, err := app.fd.UpdateWalkInPriority(id, prioReq.Priority)
			if err != nil {
				return err
			}
			printJSON(c)
			return nil
		},
	}
	priorityCmd.Flags().IntVar(&prioReq.Priority, "priority", 0, "new priority")

	var deskReq request.UpdateCheckInDesk
	var notesReq request.UpdateCheckInNotes
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "update a check-in's desk or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			deskReq.CheckInID = id
			notesReq.CheckInID = id
			if deskReq.Desk == "" && notesReq.Notes == "" {
				return fmt.Errorf("provide --desk or --notes")
			}
			if deskReq.Desk != "" {
				if err := deskReq.ValidateUpdateCheckInDesk(); err != nil {
					return err
				}
				if _, err := app.fd.UpdateCheckInDesk(deskReq.CheckInID, deskReq.Desk); err != nil {
					return err
				}
			}
			if notesReq.Notes != "" {
				if err := notesReq.ValidateUpdateCheckInNotes(); err != nil {
					return err
				}
				if _, err := app.fd.UpdateCheckInNotes(notesReq.CheckInID, notesReq.Notes); err != nil {
					return err
				}
			}
			c, err := app.fd.GetCheckIn(id)
			if err != nil {
				return err
			}
			printJSON(c)
			return nil
		},
	}
	updateCmd.Flags().StringVar(&deskReq.Desk, "desk", "", "new desk")
	updateCmd.Flags().StringVar(&notesReq.Notes, "notes", "", "new notes")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "remove a check-in without archiving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := app.fd.DeleteCheckIn(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("check-in %d not found", id)
			}
			fmt.Printf("check-in %d deleted\n", id)
			return nil
		},
	}

	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "show both queues front to back",
		RunE: func(cmd *cobra.Command, args []string) error {
			printJSON(map[string]interface{}{
				"walk_in":   app.fd.ListWalkInQueue(),
				"scheduled": app.fd.ListScheduledQueue(),
			})
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list every active check-in",
		RunE: func(cmd *cobra.Command, args []string) error {
			printJSON(app.fd.ListCheckIns())
			return nil
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "list archived check-ins, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			printJSON(app.fd.ListCheckInHistory())
			return nil
		},
	}

	clearHistoryCmd := &cobra.Command{
		Use:   "clear-history",
		Short: "delete the check-in history archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.fd.ClearCheckInHistory(); err != nil {
				return err
			}
			fmt.Println("history cleared")
			return nil
		},
	}

	checkInCmd.AddCommand(scheduledCmd, walkInCmd, nextCmd, completeCmd, priorityCmd,
		updateCmd, deleteCmd, queueCmd, listCmd, historyCmd, clearHistoryCmd)
	return checkInCmd
}
