package main

import (
	"strconv"
	"strings"
)

const (
	defaultNumQuestions    = 10
	defaultDurationMinutes = 15
	modeCombined           = "combined"
)

type ExamParams struct {
	NumQuestions    int
	DurationMinutes int
	Subject         string
}

// parseExamParams applies the start-form rules: missing fields take their
// default, a non-numeric count or duration resets both to their defaults,
// combined mode ignores the subject and the count is clamped per subject.
func parseExamParams(numRaw, durationRaw, mode, subject string) ExamParams {
	p := ExamParams{NumQuestions: defaultNumQuestions, DurationMinutes: defaultDurationMinutes}

	n, errN := atoiOr(numRaw, defaultNumQuestions)
	d, errD := atoiOr(durationRaw, defaultDurationMinutes)
	if errN == nil && errD == nil {
		if n > 0 {
			p.NumQuestions = n
		}
		if d > 0 {
			p.DurationMinutes = d
		}
	}

	mode = strings.TrimSpace(mode)
	if mode == "" {
		mode = modeCombined
	}
	p.Subject = subject
	if mode == modeCombined || p.Subject == "" {
		p.Subject = SubjectCombined
	}

	if limit := maxQuestionsFor(p.Subject); p.NumQuestions > limit {
		p.NumQuestions = limit
	}
	return p
}

func atoiOr(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
