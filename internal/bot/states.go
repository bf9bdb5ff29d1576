package bot

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/gratefultolord/prep_requests_bot/internal/db"
)

type Step string

const (
	StepStudentName       Step = "student_name"
	StepStudentNumber     Step = "student_number"
	StepTelegramHandle    Step = "telegram_handle"
	StepDeviceID          Step = "device_id"
	StepSubjects          Step = "subjects"
	StepCodesCount        Step = "codes_count"
	StepHasEnglishCodes   Step = "has_english_codes"
	StepEnglishCodesCount Step = "english_codes_count"
	StepNotes             Step = "notes"
)

const (
	eventNext       = "next"
	eventEnglishYes = "english_yes"
	eventEnglishNo  = "english_no"
)

func formEvents() fsm.Events {
	linear := []Step{
		StepStudentName,
		StepStudentNumber,
		StepTelegramHandle,
		StepDeviceID,
		StepSubjects,
		StepCodesCount,
		StepHasEnglishCodes,
	}

	var events fsm.Events
	for i := 0; i < len(linear)-1; i++ {
		events = append(events, fsm.EventDesc{
			Name: eventNext,
			Src:  []string{string(linear[i])},
			Dst:  string(linear[i+1]),
		})
	}

	return append(events,
		fsm.EventDesc{Name: eventEnglishYes, Src: []string{string(StepHasEnglishCodes)}, Dst: string(StepEnglishCodesCount)},
		fsm.EventDesc{Name: eventEnglishNo, Src: []string{string(StepHasEnglishCodes)}, Dst: string(StepNotes)},
		fsm.EventDesc{Name: eventNext, Src: []string{string(StepEnglishCodesCount)}, Dst: string(StepNotes)},
	)
}

// Draft is the partial submission of one active form session.
type Draft struct {
	machine *fsm.FSM

	StudentName       string
	StudentNumber     string
	TelegramHandle    string
	DeviceID          string
	Subjects          string
	CodesCount        int
	HasEnglishCodes   bool
	EnglishCodesCount int
	Notes             string
}

func NewDraft() *Draft {
	return &Draft{
		machine: fsm.NewFSM(string(StepStudentName), formEvents(), fsm.Callbacks{}),
	}
}

func (d *Draft) Step() Step {
	return Step(d.machine.Current())
}

func (d *Draft) fire(ctx context.Context, event string) error {
	if err := d.machine.Event(ctx, event); err != nil {
		return fmt.Errorf("Draft.fire %s from %s: %w", event, d.Step(), err)
	}

	return nil
}

func (d *Draft) submission() *db.Submission {
	english := d.EnglishCodesCount
	if !d.HasEnglishCodes {
		english = 0
	}

	return &db.Submission{
		StudentName:       d.StudentName,
		StudentNumber:     d.StudentNumber,
		TelegramHandle:    d.TelegramHandle,
		DeviceID:          d.DeviceID,
		Subjects:          d.Subjects,
		CodesCount:        d.CodesCount,
		HasEnglishCodes:   d.HasEnglishCodes,
		EnglishCodesCount: english,
		Notes:             d.Notes,
		Status:            db.StatusPending,
	}
}
