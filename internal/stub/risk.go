package stub

import (
	"strings"
	"time"

	"github.com/Nikkune/MediLabo/internal/domain/patient"
	"github.com/Nikkune/MediLabo/internal/domain/risk"
)

// triggerWords are the diagnostic terms counted across a patient's note
// history. Each occurrence of a term in a note counts once per note.
var triggerWords = []string{
	"Hemoglobin A1C",
	"Microalbumin",
	"Height",
	"Weight",
	"Smoker",
	"Abnormal",
	"Cholesterol",
	"Dizziness",
	"Relapse",
	"Reaction",
	"Antibodies",
}

// assess derives the risk level from trigger-word count, age and gender,
// following the collaborator's threshold table.
func assess(p patient.Patient, notes []string, now time.Time) risk.Level {
	count := countTriggers(notes)
	if count == 0 {
		return risk.LevelNone
	}

	age := 0
	if p.BirthDate != nil {
		age = ageInYears(p.BirthDate.Time, now)
	}
	female := p.Gender == patient.GenderFemale

	if age < 30 {
		if female {
			switch {
			case count >= 7:
				return risk.LevelEarlyOnset
			case count >= 4:
				return risk.LevelInDanger
			}
		} else {
			switch {
			case count >= 5:
				return risk.LevelEarlyOnset
			case count >= 3:
				return risk.LevelInDanger
			}
		}
		return risk.LevelNone
	}

	switch {
	case count >= 6:
		return risk.LevelInDanger
	case count >= 2:
		return risk.LevelBorderline
	}
	return risk.LevelNone
}

func countTriggers(notes []string) int {
	count := 0
	for _, note := range notes {
		lower := strings.ToLower(note)
		for _, word := range triggerWords {
			if strings.Contains(lower, strings.ToLower(word)) {
				count++
			}
		}
	}
	return count
}

// ageInYears is a whole-year age; a birth date today or later counts as 0.
func ageInYears(birth, now time.Time) int {
	if !birth.Before(now) {
		return 0
	}
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
