package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/hebcal/hdate"

	"github.com/desertthunder/luach/internal/models"
)

var (
	_ list.Item = recordItem{}
	_ list.Item = occurrenceItem{}
)

// recordItem wraps [models.BirthdayRecord] to implement [list.Item].
type recordItem struct {
	record models.BirthdayRecord
}

func (i recordItem) FilterValue() string { return i.record.Name }
func (i recordItem) Title() string       { return i.record.Name }
func (i recordItem) Description() string {
	desc := fmt.Sprintf("%d %s", i.record.HebrewDay, hdate.HMonth(i.record.HebrewMonth).String())
	if i.record.OriginYear > 0 {
		desc = fmt.Sprintf("%s %d", desc, i.record.OriginYear)
	}
	return desc
}

// occurrenceItem wraps [models.Occurrence] to implement [list.Item].
type occurrenceItem struct {
	occurrence models.Occurrence
}

func (i occurrenceItem) FilterValue() string { return i.occurrence.Name }
func (i occurrenceItem) Title() string {
	return fmt.Sprintf("%s  %s", i.occurrence.Date.ISO(), i.occurrence.Name)
}
func (i occurrenceItem) Description() string {
	desc := fmt.Sprintf("Hebrew year %d", i.occurrence.HebrewYear)
	if i.occurrence.Age > 0 {
		desc = fmt.Sprintf("%s • turns %d", desc, i.occurrence.Age)
	}
	return desc
}
