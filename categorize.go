package main

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

type SubjectCount struct {
	Subject string `json:"subject"`
	Count   int64  `json:"count"`
}

type CategorizeReport struct {
	Updated       []SubjectCount
	TotalUpdated  int64
	Uncategorized int64
}

// Categorize (re)assigns subjects from question_no ranges in one
// transaction.
func Categorize(ctx context.Context, db *gorm.DB, ranges []CategoryRange) (CategorizeReport, error) {
	var rep CategorizeReport
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range ranges {
			if r.From > r.To {
				return fmt.Errorf("range %q: from %d > to %d", r.Subject, r.From, r.To)
			}
			res := tx.Model(&Question{}).
				Where("question_no BETWEEN ? AND ?", r.From, r.To).
				Update("subject", r.Subject)
			if res.Error != nil {
				return fmt.Errorf("range %q: %w", r.Subject, res.Error)
			}
			rep.Updated = append(rep.Updated, SubjectCount{Subject: r.Subject, Count: res.RowsAffected})
			rep.TotalUpdated += res.RowsAffected
		}
		return tx.Model(&Question{}).
			Where("subject IS NULL OR subject = ''").
			Count(&rep.Uncategorized).Error
	})
	if err != nil {
		return CategorizeReport{}, err
	}
	return rep, nil
}

type SubjectSummaryReport struct {
	Known      []SubjectCount `json:"subjects"`
	KnownTotal int64          `json:"knownTotal"`
	Other      []SubjectCount `json:"other,omitempty"`
	Unlabeled  int64          `json:"unlabeled"`
}

// SubjectSummary counts questions per known subject (zero included), per
// unknown label and without a label.
func SubjectSummary(ctx context.Context, db *gorm.DB) (SubjectSummaryReport, error) {
	type row struct {
		Subject *string
		C       int64
	}
	var rows []row
	if err := db.WithContext(ctx).Model(&Question{}).
		Select("subject AS subject, COUNT(*) AS c").
		Group("subject").
		Scan(&rows).Error; err != nil {
		return SubjectSummaryReport{}, err
	}

	counts := map[string]int64{}
	var rep SubjectSummaryReport
	for _, r := range rows {
		if r.Subject == nil || *r.Subject == "" {
			rep.Unlabeled += r.C
			continue
		}
		counts[*r.Subject] += r.C
	}
	for _, s := range Subjects() {
		rep.Known = append(rep.Known, SubjectCount{Subject: s, Count: counts[s]})
		rep.KnownTotal += counts[s]
		delete(counts, s)
	}
	for s, c := range counts {
		rep.Other = append(rep.Other, SubjectCount{Subject: s, Count: c})
	}
	sort.Slice(rep.Other, func(i, j int) bool { return rep.Other[i].Subject < rep.Other[j].Subject })
	return rep, nil
}
